package allocator

import "testing"

func TestPrevPowerOfTwo(t *testing.T) {
	cases := map[uintptr]uintptr{
		1: 1, 2: 2, 3: 2, 4: 4, 5: 4, 1023: 512, 1024: 1024,
	}
	for n, want := range cases {
		if got := prevPowerOfTwo(n); got != want {
			t.Errorf("prevPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uintptr]uintptr{
		0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1025: 2048,
	}
	for n, want := range cases {
		if got := nextPowerOfTwo(n); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestLog2(t *testing.T) {
	cases := map[uintptr]int{
		1: 0, 2: 1, 4: 2, 8: 3, 1024: 10,
	}
	for n, want := range cases {
		if got := log2(n); got != want {
			t.Errorf("log2(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ size, align, want uintptr }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{17, 16, 32},
	}
	for _, c := range cases {
		if got := AlignUp(c.size, c.align); got != c.want {
			t.Errorf("AlignUp(%d,%d) = %d, want %d", c.size, c.align, got, c.want)
		}
	}
}

func TestSizeClass(t *testing.T) {
	cases := []struct {
		size, align, floor  uintptr
		wantBlock           uintptr
		wantClass           int
	}{
		{size: 1, align: 1, floor: 8, wantBlock: 8, wantClass: 3},
		{size: 9, align: 1, floor: 8, wantBlock: 16, wantClass: 4},
		{size: 1, align: 64, floor: 8, wantBlock: 64, wantClass: 6},
		{size: 0, align: 32, floor: 8, wantBlock: 32, wantClass: 5},
	}
	for _, c := range cases {
		block, class := sizeClass(c.size, c.align, c.floor)
		if block != c.wantBlock || class != c.wantClass {
			t.Errorf("sizeClass(%d,%d,%d) = (%d,%d), want (%d,%d)",
				c.size, c.align, c.floor, block, class, c.wantBlock, c.wantClass)
		}
	}
}
