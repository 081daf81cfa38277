package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountPhrase(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   int
	}{
		{"case insensitive", "Python and PYTHON and python", "python", 3},
		{"no partial word", "JavaScript developer", "java", 0},
		{"punctuation boundary", "Skills: Java, Go.", "java", 1},
		{"symbols inside phrase", "Wrote C++ and Node.js services", "c++", 1},
		{"dotted phrase", "Wrote C++ and Node.js services", "node.js", 1},
		{"multi-word phrase", "I need some time off next week", "time off", 1},
		{"short word not inside longer", "three hours", "hr", 0},
		{"short word alone", "ask HR today", "hr", 1},
		{"slash phrase", "Led UI/UX work", "ui/ux", 1},
		{"dotted token is one word", "Shipped React.js apps", "react", 0},
		{"suffix of dotted token", "Shipped React.js apps", "js", 0},
		{"sentence-final period", "Deployed on AWS.", "aws", 1},
		{"empty phrase", "anything", "", 0},
		{"empty text", "", "go", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountPhrase(tt.text, tt.phrase))
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("Sick leave policy", "leave"))
	assert.False(t, ContainsPhrase("I am leaving", "leave"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"it's", "a", "great", "day"}, Tokenize("It's a GREAT day!"))
	assert.Empty(t, Tokenize("  ...  "))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "periods",
			text: "Worked at Acme. Built APIs! Shipped it? Yes.",
			want: []string{"Worked at Acme.", "Built APIs!", "Shipped it?", "Yes."},
		},
		{
			name: "newlines and bullets",
			text: "Experience\n- Developed services at Initech\n\n• Led a team",
			want: []string{"Experience", "Developed services at Initech", "Led a team"},
		},
		{
			name: "abbreviations do not split",
			text: "Earned a B.S. Computer Science degree. Then a Ph.D. In physics.",
			want: []string{"Earned a B.S. Computer Science degree.", "Then a Ph.D. In physics."},
		},
		{
			name: "dotted tokens stay intact",
			text: "Used node.js daily. 5 years total.",
			want: []string{"Used node.js daily.", "5 years total."},
		},
		{
			name: "empty",
			text: "   \n  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}
