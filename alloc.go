package bumparena

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Ref is a typed handle to a T stored inside an arena.
type Ref[T any] struct {
	Block
}

// SliceRef is a typed handle to n consecutive Ts stored inside an arena.
type SliceRef[T any] struct {
	Block
	n int
}

// NewRef allocates a zeroed T inside the arena, aligned to unsafe.Alignof(T).
// T must not contain Go pointers: the garbage collector does not scan arena
// memory. Such types are rejected with ErrPointerType.
func NewRef[T any](a *Arena) (Ref[T], error) {
	var zero T
	if err := checkPointerFree[T](); err != nil {
		return Ref[T]{}, err
	}
	b, err := a.Alloc(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	if err != nil {
		return Ref[T]{}, err
	}
	return Ref[T]{Block: b}, nil
}

// Get returns a pointer to the value. The pointer must not be used after the
// next growth, Reset or Release; call Get again instead.
// A Ref whose Block was not allocated for a T is rejected with ErrTypeMismatch.
func (r Ref[T]) Get(a *Arena) (*T, error) {
	var zero T
	b, err := a.Bytes(r.Block)
	if err != nil {
		return nil, err
	}
	if err := checkLayout[T](r.Block, int(unsafe.Sizeof(zero))); err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return new(T), nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// NewSlice allocates n zeroed Ts inside the arena. The same pointer
// restriction as NewRef applies.
func NewSlice[T any](a *Arena, n int) (SliceRef[T], error) {
	var zero T
	if err := checkPointerFree[T](); err != nil {
		return SliceRef[T]{}, err
	}
	if n < 0 {
		return SliceRef[T]{}, errors.Wrapf(ErrInvalidSize, "slice of %d elements", n)
	}
	elem := int(unsafe.Sizeof(zero))
	if elem > 0 && n > math.MaxInt/elem {
		return SliceRef[T]{}, errors.Wrapf(ErrAllocationFailed, "%d elements of %d bytes overflows", n, elem)
	}
	b, err := a.Alloc(elem*n, int(unsafe.Alignof(zero)))
	if err != nil {
		return SliceRef[T]{}, err
	}
	return SliceRef[T]{Block: b, n: n}, nil
}

// Len returns the number of elements.
func (r SliceRef[T]) Len() int { return r.n }

// Get returns the elements as a slice, with the same lifetime rules as Ref.Get.
func (r SliceRef[T]) Get(a *Arena) ([]T, error) {
	var zero T
	b, err := a.Bytes(r.Block)
	if err != nil {
		return nil, err
	}
	if r.n < 0 {
		return nil, errors.Wrapf(ErrTypeMismatch, "%d elements", r.n)
	}
	if err := checkLayout[T](r.Block, int(unsafe.Sizeof(zero))*r.n); err != nil {
		return nil, err
	}
	if r.n == 0 {
		return []T{}, nil
	}
	if len(b) == 0 {
		return make([]T, r.n), nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), r.n), nil
}

// checkLayout verifies that b was sized and aligned for want bytes of T.
func checkLayout[T any](b Block, want int) error {
	var zero T
	if b.size != want || b.off%int(unsafe.Alignof(zero)) != 0 {
		return errors.Wrapf(ErrTypeMismatch, "%d byte block at offset %d for %s", b.size, b.off, reflect.TypeOf((*T)(nil)).Elem())
	}
	return checkPointerFree[T]()
}

func checkPointerFree[T any]() error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		return errors.Wrapf(ErrPointerType, "%s", t)
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
