package vm

import (
	"log"

	"um/pkg/metrics"
	"um/pkg/vmerrors"
)

// Registers is the machine's 8 general-purpose 32-bit registers.
type Registers [8]Word

// VM is one execution of a program: its registers, its segmented memory,
// the program counter, and the host it talks to. It carries no gas
// counter or host-call table; a segmented-memory UM has neither.
type VM struct {
	Registers Registers
	Memory    *Memory
	PC        Word
	IO        IOHost

	// trace, when non-nil, receives one line per dispatched instruction.
	// Left nil in normal operation; wiring a *log.Logger here should not
	// cost anything on the hot path beyond the nil check.
	trace *log.Logger

	metrics *metrics.Collector
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithTrace enables per-instruction tracing to logger. A nil logger is
// equivalent to omitting the option.
func WithTrace(logger *log.Logger) Option {
	return func(v *VM) { v.trace = logger }
}

// WithMetrics attaches a metrics collector. A nil collector is equivalent
// to omitting the option; every Collector method already tolerates a nil
// receiver, so the engine never branches on whether metrics are enabled.
func WithMetrics(c *metrics.Collector) Option {
	return func(v *VM) { v.metrics = c }
}

// New constructs a VM with program installed as segment 0 and every
// register zeroed.
func New(program []Word, host IOHost, opts ...Option) *VM {
	v := &VM{
		Memory: NewMemory(program),
		IO:     host,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run executes instructions starting at PC 0 until HALT, until the
// program counter runs off the end of segment 0, or until a fatal
// condition occurs. A nil return means the program halted or ran off the
// end cleanly; a non-nil return is always a *vmerrors.FatalCondition.
func (v *VM) Run() error {
	for {
		if int(v.PC) >= v.Memory.SegmentZeroLength() {
			return nil
		}

		word, err := v.Memory.Get(0, v.PC)
		if err != nil {
			return err
		}
		v.PC++

		in, err := decode(word)
		if err != nil {
			return err
		}

		if v.trace != nil {
			v.trace.Printf("pc=%-6d op=%-7s a=%d b=%d c=%d value=%d", v.PC-1, in.Op, in.A, in.B, in.C, in.Value)
		}

		err = dispatchTable[in.Op](v, in)
		v.metrics.InstructionExecuted()
		if err != nil {
			if err == errHalt {
				return nil
			}
			if fc, ok := vmerrors.As(err); ok {
				v.metrics.FatalCondition(fc.Kind.String())
			}
			return err
		}

		v.metrics.SetSegmentsLive(v.Memory.MappedCount())
	}
}
