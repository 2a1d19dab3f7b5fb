package twim_test

import (
	"bytes"
	"errors"
	"testing"

	"pca20035/internal/regacc"
	"pca20035/internal/simdev"
	"pca20035/internal/twim"
)

func newBus(t *testing.T, cfg twim.Config) (*twim.Bus, *simdev.Device) {
	t.Helper()
	d := simdev.New()
	b := twim.New(d, cfg)
	b.Enable(12, 11, true)
	return b, d
}

// expectFault runs fn and returns the Fault it halts with.
func expectFault(t *testing.T, fn func()) *regacc.Fault {
	t.Helper()
	var err error
	func() {
		defer regacc.Recover(&err)
		fn()
	}()
	var f *regacc.Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected a fault, got %v", err)
	}
	return f
}

func TestEnable(t *testing.T) {
	tests := []struct {
		name string
		fast bool
	}{
		{"fast", true},
		{"slow", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := simdev.New()
			b := twim.New(d, twim.Config{})
			b.Enable(12, 11, tt.fast)
			if !d.Enabled {
				t.Fatal("peripheral not enabled")
			}
			if d.SCL != 12 || d.SDA != 11 {
				t.Errorf("pins scl=%d sda=%d", d.SCL, d.SDA)
			}
			if d.Speed != regacc.Frequency(tt.fast) {
				t.Errorf("speed = %s", d.Speed)
			}
		})
	}
}

func TestDisableKeepsPins(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	b.Disable()
	if d.Enabled {
		t.Fatal("peripheral still enabled")
	}
	if d.SCL != 12 || d.SDA != 11 {
		t.Errorf("pins changed: scl=%d sda=%d", d.SCL, d.SDA)
	}
}

func TestReadRegister(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	d.Regs[0x2A] = 0x5C

	if got := b.ReadRegister(simdev.DefaultAddr, 0x2A); got != 0x5C {
		t.Fatalf("ReadRegister = 0x%02X, want 0x5C", got)
	}
	if d.Shorts != twim.ShortLastTxStartRx|twim.ShortLastRxStop {
		t.Errorf("shorts = %#x", d.Shorts)
	}
	for _, e := range []twim.Event{twim.EventStopped, twim.EventLastTx, twim.EventLastRx} {
		if d.Pending(e) {
			t.Errorf("event %d left set", e)
		}
	}
	io := d.Log[len(d.Log)-1]
	if io.Addr != simdev.DefaultAddr || !bytes.Equal(io.W, []byte{0x2A}) || !bytes.Equal(io.R, []byte{0x5C}) {
		t.Errorf("transaction = %+v", io)
	}
}

func TestWriteRegister(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	b.WriteRegister(simdev.DefaultAddr, 0x2C, 0x13)

	if d.Regs[0x2C] != 0x13 {
		t.Fatalf("register = 0x%02X, want 0x13", d.Regs[0x2C])
	}
	if d.Shorts != twim.ShortLastTxStop {
		t.Errorf("shorts = %#x", d.Shorts)
	}
	if d.Pending(twim.EventStopped) || d.Pending(twim.EventLastTx) {
		t.Error("events left set")
	}
	io := d.Log[len(d.Log)-1]
	if !bytes.Equal(io.W, []byte{0x2C, 0x13}) || io.R != nil {
		t.Errorf("transaction = %+v", io)
	}
}

func TestRoundTrip(t *testing.T) {
	b, _ := newBus(t, twim.Config{})
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		b.WriteRegister(simdev.DefaultAddr, 0x29, v)
		if got := b.ReadRegister(simdev.DefaultAddr, 0x29); got != v {
			t.Fatalf("wrote 0x%02X, read 0x%02X", v, got)
		}
	}
}

func TestWriteMask(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	d.Regs[0x15] = 0x1B
	regacc.WriteMask(b, simdev.DefaultAddr, 0x15, 0xE0, 0xFF)
	if d.Regs[0x15] != 0xFB {
		t.Fatalf("register = 0x%02X, want 0xFB", d.Regs[0x15])
	}
}

func TestAmountMismatchHalts(t *testing.T) {
	tests := []struct {
		name    string
		txShort int
		rxShort int
		op      func(b *twim.Bus)
		wantOp  string
		want    int
	}{
		{"read tx short", 1, 0, func(b *twim.Bus) { b.ReadRegister(simdev.DefaultAddr, 0x00) }, "read tx", 1},
		{"read rx short", 0, 1, func(b *twim.Bus) { b.ReadRegister(simdev.DefaultAddr, 0x00) }, "read rx", 1},
		{"write tx short", 1, 0, func(b *twim.Bus) { b.WriteRegister(simdev.DefaultAddr, 0x2A, 0x18) }, "write tx", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, d := newBus(t, twim.Config{})
			d.TxShort, d.RxShort = tt.txShort, tt.rxShort
			f := expectFault(t, func() { tt.op(b) })
			if f.Op != tt.wantOp || f.Want != tt.want || f.Got != tt.want-1 {
				t.Errorf("fault = %+v", f)
			}
		})
	}
}

func TestAbsentDeviceHalts(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	d.Absent = true
	f := expectFault(t, func() { b.ReadRegister(simdev.DefaultAddr, 0x00) })
	if f.Got != 0 {
		t.Errorf("fault = %+v", f)
	}
}

func TestStalledDeviceStillCompletes(t *testing.T) {
	b, d := newBus(t, twim.Config{})
	d.StallPolls = 1000
	d.Regs[0x04] = 0x1F
	if got := b.ReadRegister(simdev.DefaultAddr, 0x04); got != 0x1F {
		t.Fatalf("read 0x%02X", got)
	}
}

func TestPollLimit(t *testing.T) {
	b, d := newBus(t, twim.Config{PollLimit: 10})
	d.StallPolls = 50
	f := expectFault(t, func() { b.WriteRegister(simdev.DefaultAddr, 0x2A, 0x18) })
	if !errors.Is(f, twim.ErrPollLimit) {
		t.Errorf("fault = %v", f)
	}
}

func TestPollLimitOnDisabledPeripheral(t *testing.T) {
	d := simdev.New()
	b := twim.New(d, twim.Config{PollLimit: 5})
	f := expectFault(t, func() { b.ReadRegister(simdev.DefaultAddr, 0x00) })
	if !errors.Is(f, twim.ErrPollLimit) {
		t.Errorf("fault = %v", f)
	}
}
