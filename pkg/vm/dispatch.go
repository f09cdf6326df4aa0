package vm

// Handler executes one decoded instruction against the VM's state. It
// returns nil to continue execution, errHalt to terminate cleanly, or a
// *vmerrors.FatalCondition for any of the abnormal terminations in
// spec.md §7.
//
// Program-counter discipline: the engine has already advanced PC past the
// fetched word before calling the handler, so LOADP's handler is the only
// one that ever needs to touch PC directly.
type Handler func(v *VM, in instruction) error

var dispatchTable [numOpcodes]Handler

func init() {
	dispatchTable = [numOpcodes]Handler{
		OpCMOV:   handleCMOV,
		OpSLOAD:  handleSLOAD,
		OpSSTORE: handleSSTORE,
		OpADD:    handleADD,
		OpMUL:    handleMUL,
		OpDIV:    handleDIV,
		OpNAND:   handleNAND,
		OpHALT:   handleHALT,
		OpMAP:    handleMAP,
		OpUNMAP:  handleUNMAP,
		OpOUT:    handleOUT,
		OpIN:     handleIN,
		OpLOADP:  handleLOADP,
		OpLV:     handleLV,
	}
}
