package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	settings := []Setting{
		{Key: "path", Value: "/data/clip.kw"},
		{Key: "looping", Value: "off"},
	}

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "nested block",
			lines: []string{"{inner", "done}"},
			want: "clip.kw = {inner\n" +
				"    done}\n" +
				"data = kwpic.Reader(clip.kw)\n" +
				"    path = \"/data/clip.kw\"\n" +
				"    looping = \"off\"\n",
		},
		{
			name:  "no provenance",
			lines: nil,
			want: "clip.kw = data = kwpic.Reader(clip.kw)\n" +
				"    path = \"/data/clip.kw\"\n" +
				"    looping = \"off\"\n",
		},
		{
			name:  "two levels",
			lines: []string{"resize(", "{src", "{camera", "iso 100}", "gamma}", ")"},
			want: "clip.kw = resize(\n" +
				"    {src\n" +
				"        {camera\n" +
				"        iso 100}\n" +
				"    gamma}\n" +
				")\n" +
				"data = kwpic.Reader(clip.kw)\n" +
				"    path = \"/data/clip.kw\"\n" +
				"    looping = \"off\"\n",
		},
		{
			name:  "unbalanced close",
			lines: []string{"a}", "b}", "{c"},
			want: "clip.kw = a}\n" +
				"b}\n" +
				"{c\n" +
				"data = kwpic.Reader(clip.kw)\n" +
				"    path = \"/data/clip.kw\"\n" +
				"    looping = \"off\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build("clip.kw", tt.lines, settings...))
		})
	}
}

func TestBuild_EmptyLineAndQuoting(t *testing.T) {
	got := Build("a.pic", []string{"", "x"}, Setting{Key: "path", Value: `C:\pics\"a".pic`})
	assert.Equal(t, "a.pic = \n"+
		"x\n"+
		"data = kwpic.Reader(a.pic)\n"+
		`    path = "C:\\pics\\\"a\".pic"`+"\n", got)
}
