package parse

import (
	"bufio"
	"regexp"
	"strings"
)

// ws also covers the no-break spaces some exports put around the time.
const ws = `[\s\x{00A0}\x{202F}]`

// headerRe matches "<date>, <time> - <sender>: <text>".
// Groups: 1 date, 2 and 3 date separators, 4 time, 5 sender, 6 text.
var headerRe = regexp.MustCompile(
	`^(\d{1,2}([/\-.])\d{1,2}([/\-.])\d{2,4}),?` + ws + `+` +
		`(\d{1,2}:\d{2}(?:` + ws + `*[aApP][mM])?)` + ws + `+-` + ws + `+` +
		`([^:]+):` + ws + `+(.*)$`)

type Options struct {
	DateOrder DateOrder
}

type Parser struct {
	order DateOrder
}

func NewParser(opts Options) *Parser {
	order := opts.DateOrder
	if order == "" {
		order = DayFirst
	}
	return &Parser{order: order}
}

var defaultParser = NewParser(Options{})

// Parse splits a chat export into messages using day-first dates.
func Parse(content string) []Message {
	return defaultParser.Parse(content)
}

// Parse never fails: lines that are neither headers nor continuations of an
// open message are dropped.
func (p *Parser) Parse(content string) []Message {
	scanner := bufio.NewScanner(strings.NewReader(content))
	// a single line can never outgrow the whole input
	scanner.Buffer(make([]byte, 0, 64*1024), max(len(content)+1, 64*1024))

	var st lineState
	for scanner.Scan() {
		st.step(p, scanner.Text())
	}
	return st.finish()
}

// lineState holds the only state the grammar needs: the message still
// collecting continuation lines, if any.
type lineState struct {
	open *Message
	out  []Message
}

func (s *lineState) step(p *Parser, line string) {
	if msg, ok := p.header(line); ok {
		s.flush()
		s.open = &msg
		return
	}
	if s.open == nil || strings.TrimSpace(line) == "" {
		return
	}
	s.open.Text += "\n" + line
	s.open.apply(Classify(s.open.Text))
}

func (s *lineState) flush() {
	if s.open != nil {
		s.out = append(s.out, *s.open)
		s.open = nil
	}
}

func (s *lineState) finish() []Message {
	s.flush()
	return s.out
}

func (p *Parser) header(line string) (Message, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil || m[2] != m[3] {
		return Message{}, false
	}

	date := NormalizeDate(m[1], p.order)
	msg := Message{
		Date:     date,
		Time:     m[4],
		DateTime: date + " " + m[4],
		Sender:   m[5],
		Text:     m[6],
	}
	msg.apply(Classify(msg.Text))
	return msg, true
}
