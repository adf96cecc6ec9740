package rowbinary

import "testing"

func TestSizedPoolReturnsRequestedLength(t *testing.T) {
	p := newSizedPool()
	buf := p.Get(64)
	if len(buf) != 64 {
		t.Fatalf("Get(64): got length %d", len(buf))
	}
}

func TestSizedPoolRoundTripReusesSlab(t *testing.T) {
	p := newSizedPool()
	buf := p.Get(128)
	buf[0] = 0xAB
	p.Put(buf)

	again := p.Get(128)
	if len(again) != 128 {
		t.Fatalf("Get(128) after Put: got length %d", len(again))
	}
}

func TestSizedPoolKeepsSizesSeparate(t *testing.T) {
	p := newSizedPool()
	small := p.Get(16)
	big := p.Get(256)
	if len(small) != 16 || len(big) != 256 {
		t.Fatalf("got lengths %d, %d", len(small), len(big))
	}
	p.Put(small)
	p.Put(big)

	gotSmall := p.Get(16)
	gotBig := p.Get(256)
	if len(gotSmall) != 16 || len(gotBig) != 256 {
		t.Fatalf("after Put/Get: got lengths %d, %d", len(gotSmall), len(gotBig))
	}
}

func TestOptionsResolveDefaultsToDefaultBufferSize(t *testing.T) {
	buf, pool, pooled, err := Options{}.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(buf) != DefaultBufferSize {
		t.Errorf("got buffer length %d, want %d", len(buf), DefaultBufferSize)
	}
	if !pooled {
		t.Error("expected the default-buffer path to be marked pooled")
	}
	if pool != DefaultPool {
		t.Error("expected the default-buffer path to use DefaultPool")
	}
}

func TestOptionsResolveHonorsCallerBuffer(t *testing.T) {
	caller := make([]byte, 32)
	buf, pool, pooled, err := Options{Buffer: caller}.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pooled {
		t.Error("a caller-supplied buffer must never be marked pooled")
	}
	if pool != nil {
		t.Error("a caller-supplied buffer must not carry a pool")
	}
	if len(buf) != 32 {
		t.Errorf("got buffer length %d, want 32", len(buf))
	}
}

func TestOptionsResolveRejectsEmptyCallerBuffer(t *testing.T) {
	if _, _, _, err := (Options{Buffer: []byte{}}).resolve(); err == nil {
		t.Fatal("expected an error for an empty caller-supplied buffer")
	}
}

func TestOptionsResolveRejectsNegativeBufferSize(t *testing.T) {
	if _, _, _, err := (Options{BufferSize: -1}).resolve(); err == nil {
		t.Fatal("expected an error for a negative BufferSize")
	}
}
