package serialx

import "testing"

func TestRingBufferFIFOOrder(t *testing.T) {
	rb := NewRingBuffer()
	for i := 0; i < rb.Size()-1; i++ {
		if !rb.Put(byte(i)) {
			t.Fatalf("Put failed at %d with %d slots usable", i, rb.Size()-1)
		}
	}
	for i := 0; i < rb.Size()-1; i++ {
		b, ok := rb.Get()
		if !ok || b != byte(i) {
			t.Fatalf("Get %d: got (%d,%v), want (%d,true)", i, b, ok, byte(i))
		}
	}
	if _, ok := rb.Get(); ok {
		t.Fatal("Get on drained buffer reported data")
	}
}

func TestRingBufferReservesOneSlot(t *testing.T) {
	rb := NewRingBuffer()
	for i := 0; i < rb.Size()-1; i++ {
		if !rb.Put('x') {
			t.Fatalf("Put failed at %d", i)
		}
	}
	if rb.Used() != rb.Size()-1 {
		t.Fatalf("Used = %d, want %d", rb.Used(), rb.Size()-1)
	}
	if rb.Put('y') {
		t.Fatal("Put succeeded on a full buffer")
	}
}

func TestRingBufferCountWraps(t *testing.T) {
	rb := NewRingBuffer()
	// Walk the indices most of the way around, then straddle the wrap point.
	for i := 0; i < rb.Size()-2; i++ {
		rb.Put(0)
		rb.Get()
	}
	for i := 0; i < 5; i++ {
		rb.Put(byte('a' + i))
	}
	if rb.Used() != 5 {
		t.Fatalf("Used across wrap = %d, want 5", rb.Used())
	}
	for i := 0; i < 5; i++ {
		b, ok := rb.Get()
		if !ok || b != byte('a'+i) {
			t.Fatalf("Get across wrap %d: got (%c,%v)", i, b, ok)
		}
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer()
	rb.Put(1)
	rb.Put(2)
	rb.Clear()
	if rb.Used() != 0 {
		t.Fatalf("Used after Clear = %d, want 0", rb.Used())
	}
	// The ring must remain usable from the cleared position.
	rb.Put(3)
	if b, ok := rb.Get(); !ok || b != 3 {
		t.Fatalf("Get after Clear: got (%d,%v), want (3,true)", b, ok)
	}
}

func TestRingBufferPutOverwriteSacrificesBacklog(t *testing.T) {
	rb := NewRingBuffer()
	for i := 0; i < rb.Size()-1; i++ {
		rb.Put('x')
	}
	if rb.PutOverwrite('y') {
		t.Fatal("overflow insert reported a clean put")
	}
	// Head has passed tail: the accounting now reads empty. The backlog is
	// gone with no flag raised; that is the chosen policy, so pin it here.
	if rb.Used() != 0 {
		t.Fatalf("Used after overflow insert = %d, want 0", rb.Used())
	}
	if !rb.PutOverwrite('z') {
		t.Fatal("insert into drained buffer reported loss")
	}
	if rb.Used() != 1 {
		t.Fatalf("Used = %d, want 1", rb.Used())
	}
}
