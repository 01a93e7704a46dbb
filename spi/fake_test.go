package spi

// Test doubles for the hardware seams. The bus plays back a scripted MISO
// byte sequence and records everything the link clocks out, which is
// enough to verify frames bit-exactly without hardware.

type fakeBus struct {
	rx       []byte // scripted MISO bytes, Dummy once exhausted
	tx       []byte // recorded MOSI bytes
	cs       *fakeCS
	csBroken bool // set when a transfer happens without chip-select
}

func (b *fakeBus) Transfer(tx byte) byte {
	if b.cs != nil && !b.cs.asserted {
		b.csBroken = true
	}
	b.tx = append(b.tx, tx)
	if len(b.rx) == 0 {
		return Dummy
	}
	r := b.rx[0]
	b.rx = b.rx[1:]
	return r
}

type fakeCS struct {
	asserted  bool
	asserts   int
	releases  int
	unbalance bool // Release without Assert or double Assert
}

func (c *fakeCS) Assert() {
	if c.asserted {
		c.unbalance = true
	}
	c.asserted = true
	c.asserts++
}

func (c *fakeCS) Release() {
	if !c.asserted {
		c.unbalance = true
	}
	c.asserted = false
	c.releases++
}

type fakeInt struct {
	level bool // true = line low, data pending
}

func (f *fakeInt) Low() bool { return f.level }

// script builds a MISO sequence of n filler bytes with specific positions
// overridden.
func script(n int, overrides map[int]byte) []byte {
	rx := make([]byte, n)
	for i := range rx {
		rx[i] = Dummy
	}
	for i, b := range overrides {
		rx[i] = b
	}
	return rx
}
