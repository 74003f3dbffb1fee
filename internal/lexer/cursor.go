package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"riptide/internal/source"
)

// Cursor представляет собой позицию в файле.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

// NewCursor creates a cursor over the whole file content.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return Cursor{File: f, limit: limit}
}

// EOF проверяет, достигнут ли конец файла.
func (c *Cursor) EOF() bool { return c.Off >= c.limit }

// Peek читает текущий байт; 0 на конце файла.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции; 0 за границей.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump продвигает курсор на один байт.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.Off++
	}
}

// Slice возвращает срез контента [from, c.Off).
func (c *Cursor) Slice(from uint32) []byte {
	return c.File.Content[from:c.Off]
}
