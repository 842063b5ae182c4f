package vm

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mforth/tiff32/internal/log"
)

type loaderHarness struct {
	*testing.T
}

func (*loaderHarness) Logger() *log.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

type loaderCase struct {
	name      string
	origin    uint32
	code      []Cell
	expLoaded int
	expErr    error
}

func TestLoader_Load(tt *testing.T) {
	tt.Parallel()

	tcs := []loaderCase{{
		name:      "Ok",
		origin:    0,
		code:      []Cell{0x70000001, 0x03, 0x02},
		expLoaded: 3,
	}, {
		name:   "bad origin",
		origin: 0x100,
		code:   []Cell{0x70000001},
		expErr: ErrObjectLoader,
	}, {
		name:   "too short",
		code:   []Cell{},
		expErr: ErrObjectLoader,
	}}

	for _, tc := range tcs {
		tc := tc

		tt.Run(tc.name, func(tt *testing.T) {
			t := loaderHarness{tt}
			t.Parallel()

			machine := New(1024, 64, 0, WithLogger(t.Logger()))
			loader := NewLoader(machine)

			obj := ObjectCode{Orig: tc.origin, Code: tc.code}
			loaded, err := loader.Load(obj)

			if loaded != tc.expLoaded {
				t.Errorf("wrong loaded count: got: %d want: %d", loaded, tc.expLoaded)
			}

			switch {
			case tc.expErr == nil && err != nil:
				t.Error("unexpected error:", err)
			case tc.expErr != nil && err == nil:
				t.Error("expected error:", "want:", tc.expErr)
			case tc.expErr != nil && !errors.Is(err, tc.expErr):
				t.Error("unexpected error:", "want:", tc.expErr, "got:", err)
			}

			if tc.expErr == nil {
				for i, c := range tc.code {
					if machine.ROM[i] != c {
						t.Errorf("ROM[%d]: want %s got %s", i, c, machine.ROM[i])
					}
				}
			}
		})
	}
}

type objectCase struct {
	name      string
	bytes     []byte
	expObject ObjectCode
	expRead   int
	expErr    error
}

func TestObjectCode(t *testing.T) {
	t.Parallel()

	tcs := []objectCase{{
		name: "Ok",
		bytes: []byte{
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x12, 0x34,
			0x00, 0x00, 0x56, 0x78,
		},
		expRead: 12,
		expObject: ObjectCode{
			Orig: 0,
			Code: []Cell{0x1234, 0x5678},
		},
	}, {
		name:   "too short",
		bytes:  nil,
		expErr: ErrObjectLoader,
	}}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(tt *testing.T) {
			t := loaderHarness{tt}
			t.Parallel()

			obj := ObjectCode{}
			read, err := obj.read(tc.bytes)

			if read != tc.expRead {
				t.Error("unexpected read count", "want:", tc.expRead, "got:", read)
			}

			if obj.Orig != tc.expObject.Orig {
				t.Error("unexpected origin", "want:", tc.expObject.Orig, "got:", obj.Orig)
			}

			switch {
			case tc.expErr == nil && err != nil:
				t.Error("unexpected error:", "got:", err)
			case tc.expErr != nil && err == nil:
				t.Error("expected error:", "want:", tc.expErr, "got:", err)
			case tc.expErr != nil && err != nil:
				if !errors.Is(err, tc.expErr) {
					t.Error("unexpected error:", "want", tc.expErr, "got", err)
				}
			}

			if len(obj.Code) != len(tc.expObject.Code) {
				t.Error("code length", "want:", len(tc.expObject.Code), "got:", len(obj.Code))
			}

			for i := range obj.Code {
				if obj.Code[i] != tc.expObject.Code[i] {
					t.Errorf("unexpected code: want: %s, got: %s",
						tc.expObject.Code[i], obj.Code[i])
				}
			}
		})
	}
}
