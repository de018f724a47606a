/*
 Line supplier and consumer for command-stream text
*/

package storage

import (
	"bufio"
	"io"
)

type LineStorage interface {
	Supplier
	Consumer
}

// Supplier hands out lines one at a time. String returns "" once the
// source is exhausted, so implementations must never store empty lines;
// Accept on this package's Storage upholds that by dropping them.
type Supplier interface {
	String() string
	Len() int
}

type Consumer interface {
	Accept(string)
}

// Storage buffers the physical lines of a command stream and hands them
// out one at a time.
type Storage struct {
	index int
	lines []string
}

func NewStorage() *Storage {
	retVal := new(Storage)
	retVal.lines = make([]string, 0)
	return retVal
}

// String returns the next buffered line, or "" when the storage is
// exhausted.
func (storage *Storage) String() string {
	if len(storage.lines) == 0 || storage.index == len(storage.lines) {
		// no more lines in the storage
		return ""
	}
	index := storage.index
	storage.index++
	return storage.lines[index]
}

// empty lines are discarded
func (storage *Storage) Accept(s string) {
	if len(s) > 0 {
		storage.lines = append(storage.lines, s)
	}
}

func (storage *Storage) Len() int {
	return len(storage.lines)
}

func (storage *Storage) ResetPos() {
	storage.index = 0
}

func (storage *Storage) Empty() {
	storage.index = 0
	storage.lines = storage.lines[:0]
}

func (storage *Storage) PeekPos() int {
	return storage.index
}

func (storage *Storage) ToArray() []string {
	retVal := make([]string, 0, len(storage.lines))
	retVal = append(retVal, storage.lines...)
	return retVal
}

// Feed reads r line by line into the storage, stripping carriage returns.
func (storage *Storage) Feed(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		storage.Accept(line)
	}
	return sc.Err()
}
