package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrLex indicates a lexer failure.
var ErrLex = errors.New("lex error")

// Scanner turns one source line into tokens. It keeps no state between lines,
// so a single Scanner may be reused for guard re-tokenization.
type Scanner struct {
	source string
	cursor int
	line   int
	out    []Token
}

// NewScanner returns a scanner ready for Tokenize.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Tokenize scans a full line.
func (s *Scanner) Tokenize(line string) ([]Token, error) {
	return s.TokenizeLine(line, 0)
}

// TokenizeLine scans a line and stamps every token with the given line number.
func (s *Scanner) TokenizeLine(source string, line int) ([]Token, error) {
	s.source = source
	s.cursor = 0
	s.line = line
	s.out = nil
	for {
		s.skipWhitespace()
		if s.cursor >= len(s.source) {
			break
		}
		if err := s.next(); err != nil {
			return nil, err
		}
	}
	out := s.out
	s.out = nil
	return out, nil
}

func (s *Scanner) next() error {
	ch := s.source[s.cursor]

	if ch == '/' && s.peek() == '/' {
		s.cursor = len(s.source)
		return nil
	}
	if ch == '"' {
		return s.scanString()
	}
	if ch == '\'' {
		return s.scanChar()
	}
	if isDigit(ch) {
		s.scanNumber()
		return nil
	}
	if isAlpha(ch) {
		return s.scanWord()
	}
	return s.scanSymbol()
}

func (s *Scanner) scanSymbol() error {
	start := s.cursor
	ch := s.source[s.cursor]
	s.cursor++
	switch ch {
	case '+', '-', '*', '/':
		s.emit(KindOperator, string(ch))
	case '=':
		if s.match('=') {
			s.emit(KindOperator, "==")
		} else {
			s.emit(KindAssignmentOperator, "=")
		}
	case '!':
		if !s.match('=') {
			return s.errorf(start, "unexpected character %q", ch)
		}
		s.emit(KindOperator, "!=")
	case '<', '>':
		if s.match('=') {
			s.emit(KindOperator, string(ch)+"=")
		} else {
			s.emit(KindOperator, string(ch))
		}
	case '&', '|':
		if !s.match(ch) {
			return s.errorf(start, "unexpected character %q", ch)
		}
		s.emit(KindOperator, string([]byte{ch, ch}))
	case '(':
		s.emit(KindLeftParen, "")
	case ')':
		s.emit(KindRightParen, "")
	case '{':
		s.emit(KindLeftBrace, "")
	case '}':
		s.emit(KindRightBrace, "")
	case '[':
		s.emit(KindLeftBracket, "")
	case ']':
		s.emit(KindRightBracket, "")
	case ',':
		s.emit(KindArgumentSeparator, "")
	case ';':
		s.emit(KindSemiColon, "")
	default:
		r, _ := utf8.DecodeRuneInString(s.source[start:])
		return s.errorf(start, "unexpected character %q", r)
	}
	return nil
}

func (s *Scanner) scanNumber() {
	start := s.cursor
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
	}
	kind := KindInt
	if s.cursor < len(s.source) && s.source[s.cursor] == '.' {
		kind = KindFloat
		s.cursor++
		for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
			s.cursor++
		}
	}
	s.emit(kind, s.source[start:s.cursor])
}

func (s *Scanner) scanString() error {
	start := s.cursor
	s.cursor++ // opening quote
	var b strings.Builder
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		switch ch {
		case '"':
			s.cursor++
			s.emit(KindString, b.String())
			return nil
		case '\\':
			r, err := s.scanEscape(start)
			if err != nil {
				return err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(ch)
			s.cursor++
		}
	}
	return s.errorf(start, "unterminated string literal")
}

func (s *Scanner) scanChar() error {
	start := s.cursor
	s.cursor++ // opening quote
	if s.cursor >= len(s.source) {
		return s.errorf(start, "unterminated char literal")
	}
	var r rune
	if s.source[s.cursor] == '\\' {
		esc, err := s.scanEscape(start)
		if err != nil {
			return err
		}
		r = esc
	} else {
		decoded, size := utf8.DecodeRuneInString(s.source[s.cursor:])
		r = decoded
		s.cursor += size
	}
	if !s.match('\'') {
		return s.errorf(start, "unterminated char literal")
	}
	s.emit(KindChar, string(r))
	return nil
}

func (s *Scanner) scanEscape(start int) (rune, error) {
	s.cursor++ // backslash
	if s.cursor >= len(s.source) {
		return 0, s.errorf(start, "unterminated escape sequence")
	}
	ch := s.source[s.cursor]
	s.cursor++
	switch ch {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'':
		return rune(ch), nil
	default:
		return 0, s.errorf(start, "unknown escape sequence \\%c", ch)
	}
}

func (s *Scanner) scanWord() error {
	start := s.cursor
	word := s.identifier()
	switch word {
	case "true", "false":
		s.emit(KindBool, word)
	case "if":
		return s.scanGuard(KindIf, start)
	case "while":
		return s.scanGuard(KindWhile, start)
	case "for":
		return s.scanGuard(KindFor, start)
	case "else":
		s.emit(KindElse, "")
	case "func":
		return s.scanFunction(start)
	default:
		s.skipWhitespace()
		switch s.peekByte() {
		case ':':
			s.cursor++
			s.skipWhitespace()
			typeName := s.identifier()
			if typeName == "" {
				return s.errorf(start, "expected type after %q", word+":")
			}
			s.emit(KindVariable, word)
			s.emit(KindVariableType, typeName)
		case '(':
			s.emit(KindFunctionCall, word)
		default:
			s.emit(KindVariableCall, word)
		}
	}
	return nil
}

// scanGuard captures the parenthesised condition of a control header verbatim;
// it is re-tokenized every time the guard is evaluated.
func (s *Scanner) scanGuard(kind Kind, start int) error {
	s.skipWhitespace()
	if !s.match('(') {
		return s.errorf(start, "expected '(' after %s", strings.ToLower(kind.String()))
	}
	open := s.cursor
	depth := 1
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				cond := strings.TrimSpace(s.source[open:s.cursor])
				s.cursor++
				if cond == "" {
					return s.errorf(start, "empty %s condition", strings.ToLower(kind.String()))
				}
				s.emit(kind, cond)
				return nil
			}
		case '"', '\'':
			// parentheses inside string and char literals do not count
			quote := s.source[s.cursor]
			s.cursor++
			for s.cursor < len(s.source) && s.source[s.cursor] != quote {
				if s.source[s.cursor] == '\\' {
					s.cursor++
				}
				s.cursor++
			}
		}
		s.cursor++
	}
	return s.errorf(start, "unterminated %s condition", strings.ToLower(kind.String()))
}

func (s *Scanner) scanFunction(start int) error {
	s.skipWhitespace()
	name := s.identifier()
	if name == "" {
		return s.errorf(start, "expected function name after 'func'")
	}
	s.skipWhitespace()
	if !s.match('(') {
		return s.errorf(start, "expected '(' after function name %q", name)
	}
	s.skipWhitespace()
	if !s.match(')') {
		return s.errorf(start, "function %q: parameters are not supported", name)
	}
	s.emit(KindFunction, name)
	return nil
}

func (s *Scanner) identifier() string {
	start := s.cursor
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if !isAlpha(ch) && !isDigit(ch) {
			break
		}
		s.cursor++
	}
	return s.source[start:s.cursor]
}

func (s *Scanner) emit(kind Kind, text string) {
	s.out = append(s.out, Token{Kind: kind, Text: text, Line: s.line})
}

func (s *Scanner) match(ch byte) bool {
	if s.cursor < len(s.source) && s.source[s.cursor] == ch {
		s.cursor++
		return true
	}
	return false
}

func (s *Scanner) peek() byte {
	if s.cursor+1 < len(s.source) {
		return s.source[s.cursor+1]
	}
	return 0
}

func (s *Scanner) peekByte() byte {
	if s.cursor < len(s.source) {
		return s.source[s.cursor]
	}
	return 0
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		r, size := utf8.DecodeRuneInString(s.source[s.cursor:])
		if !unicode.IsSpace(r) {
			return
		}
		s.cursor += size
	}
}

func (s *Scanner) errorf(col int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if s.line > 0 {
		return fmt.Errorf("%w: line %d column %d: %s", ErrLex, s.line, col+1, msg)
	}
	return fmt.Errorf("%w: column %d: %s", ErrLex, col+1, msg)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
