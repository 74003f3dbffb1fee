package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка, на первое время
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002
	LexBadDirective Code = 1003

	// Парсерные
	SynUnexpectedToken Code = 2001
	SynExpectSemicolon Code = 2002
	SynExpectExpr      Code = 2003
	SynUnclosedParen   Code = 2004
	SynUnclosedBrace   Code = 2005

	// Семантика поверхностного языка
	SemUndefinedName Code = 3001
	SemRedefinedName Code = 3002
	SemUnreachable   Code = 3003
)

func (c Code) String() string {
	return fmt.Sprintf("RT%04d", uint16(c))
}
