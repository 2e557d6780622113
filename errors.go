package buddy

import "errors"

// ErrorOutofMemory no free block of sufficient order anywhere in the
// tree, or the requested size exceeds the whole-heap block.
var ErrorOutofMemory = errors.New("buddy.outofmemory")

// ErrorInvalidSize requested allocation size is zero or negative.
var ErrorInvalidSize = errors.New("buddy.invalidsize")

// ErrorUnsupportedAlign type's alignment exceeds the configured
// minblock, block offsets are only guaranteed minblock aligned.
var ErrorUnsupportedAlign = errors.New("buddy.unsupportedalignment")

// ErrorInvalidPointer pointer is outside the heap, misaligned, or does
// not refer to a currently allocated block. Covers double free and
// freeing a foreign pointer.
var ErrorInvalidPointer = errors.New("buddy.invalidpointer")

// ErrorNotInitialized allocator used before Initbuffer, or after
// Release.
var ErrorNotInitialized = errors.New("buddy.notinitialized")
