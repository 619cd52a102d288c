package services

import "errors"

// Reorder returns a new slice with the element at fromIndex moved to
// toIndex. Pure, the input is not modified.
func Reorder[T any](list []T, fromIndex, toIndex int) ([]T, error) {
	if fromIndex < 0 || fromIndex >= len(list) || toIndex < 0 || toIndex >= len(list) {
		return nil, errors.New("reorder index out of range")
	}

	out := make([]T, 0, len(list))
	out = append(out, list[:fromIndex]...)
	out = append(out, list[fromIndex+1:]...)

	moved := list[fromIndex]
	out = append(out[:toIndex], append([]T{moved}, out[toIndex:]...)...)
	return out, nil
}
