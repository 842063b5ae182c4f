package vm

// loader.go holds an object loader. Unlike a byte-addressed machine, the only memory a host ever
// loads directly is ROM: RAM is always cleared by Reset and is otherwise only reachable by
// executing instructions.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mforth/tiff32/internal/log"
)

// Loader writes object code into a VM's ROM.
type Loader struct {
	vm  *VM
	log *log.Logger
}

// NewLoader creates a new object loader.
func NewLoader(vm *VM) *Loader {
	return &Loader{
		vm:  vm,
		log: log.DefaultLogger(),
	}
}

var ErrObjectLoader = errors.New("loader error")

// Load writes the object code's cells into ROM, starting at its origin address.
func (l *Loader) Load(obj ObjectCode) (int, error) {
	if len(obj.Code) == 0 {
		return 0, fmt.Errorf("%w: object too small", ErrObjectLoader)
	}

	l.log.Debug("Loading object", "orig", obj.Orig, "cells", len(obj.Code))

	if obj.Orig != 0 {
		return 0, fmt.Errorf("%w: ROM images must originate at zero, got %#x", ErrObjectLoader, obj.Orig)
	}

	if err := l.vm.WriteROMImage(obj.Code); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	return len(obj.Code), nil
}

// ObjectCode holds a program image and the address it should be loaded at. Tiff32's ROM image is
// always loaded as a single contiguous block starting at cell zero.
type ObjectCode struct {
	Orig uint32
	Code []Cell
}

// read decodes an object from a big-endian byte stream: a 4-byte origin, followed by 4-byte
// cells.
func (obj *ObjectCode) read(b []byte) (int, error) {
	var count int

	if len(b) < 4 {
		return 0, fmt.Errorf("%w: object code too small", ErrObjectLoader)
	}

	in := bytes.NewReader(b)

	if err := binary.Read(in, binary.BigEndian, &obj.Orig); err != nil {
		return count, fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	count += 4

	obj.Code = make([]Cell, (len(b)-4)/4)
	if err := binary.Read(in, binary.BigEndian, obj.Code); err != nil {
		return count, fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	count += len(obj.Code) * 4

	return count, nil
}
