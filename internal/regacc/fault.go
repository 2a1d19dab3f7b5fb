package regacc

import (
	"fmt"
)

// Fault describes a bus transaction or device check that cannot be
// continued from. It is raised with Halt, never returned.
type Fault struct {
	Op   string
	Dev  uint8
	Reg  uint8
	Want int
	Got  int
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s dev 0x%02X reg 0x%02X: %v", f.Op, f.Dev, f.Reg, f.Err)
	}
	return fmt.Sprintf("%s dev 0x%02X reg 0x%02X: want %d, got %d", f.Op, f.Dev, f.Reg, f.Want, f.Got)
}

func (f *Fault) Unwrap() error { return f.Err }

// Halt stops the caller. Power rails are in an unknown state once a
// transfer or identity check fails, so there is no error return path.
func Halt(f *Fault) {
	panic(f)
}

// Recover turns a Fault raised below it into *errp so a command can log it
// before exiting. Any other panic is propagated.
//
//	defer regacc.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	f, ok := r.(*Fault)
	if !ok {
		panic(r)
	}
	*errp = f
}
