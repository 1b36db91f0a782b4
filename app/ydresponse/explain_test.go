package ydresponse

import (
	"strings"
	"testing"

	"github.com/rbhz/ydcv/app/formatters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagFormatter marks every styled piece with the style name
type tagFormatter struct{}

func (tagFormatter) Error(s string) string     { return "<red>" + s + "</red>" }
func (tagFormatter) Underline(s string) string { return "<u>" + s + "</u>" }
func (tagFormatter) Heading(s string) string   { return "<cyan>" + s + "</cyan>" }
func (tagFormatter) Value(s string) string     { return "<yellow>" + s + "</yellow>" }
func (tagFormatter) Secondary(s string) string { return "<purple>" + s + "</purple>" }
func (tagFormatter) Plain(s string) string     { return "<plain>" + s + "</plain>" }

func mustParse(t *testing.T, raw string) Response {
	t.Helper()
	resp, err := Parse(raw)
	require.NoError(t, err)
	return resp
}

func TestExplainNoResult(t *testing.T) {
	cases := map[string]string{
		"nulls":        `{"errorCode":"0","query":"xyzzy","translation":null,"basic":null,"web":null}`,
		"absent":       `{"errorCode":0,"query":"xyzzy"}`,
		"error string": `{"errorCode":"108","query":"xyzzy","translation":["a"],"basic":{"explains":["b"]}}`,
		"error number": `{"errorCode":302,"query":"xyzzy","web":[{"key":"k","value":["v"]}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			resp := mustParse(t, raw)
			assert.Equal(t, "<red> -- No result for this query.</red>", resp.Explain(tagFormatter{}))
			assert.Equal(t, " -- No result for this query.", resp.Explain(formatters.PlainFormatter{}))
		})
	}
}

func TestExplainTranslationOnly(t *testing.T) {
	resp := mustParse(t, `{"errorCode":0,"query":"foobar","translation":["foo","bar"]}`)
	t.Run("plain", func(t *testing.T) {
		expected := "foobar\n  Translation:\n    foo；bar"
		assert.Equal(t, expected, resp.Explain(formatters.PlainFormatter{}))
	})
	t.Run("styled", func(t *testing.T) {
		lines := strings.Split(resp.Explain(tagFormatter{}), "\n")
		assert.Equal(t, []string{
			"<u>foobar</u>",
			"<cyan>  Translation:</cyan>",
			"    <plain>foo；bar</plain>",
		}, lines)
	})
	t.Run("empty translation", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":"0","query":"q","translation":[]}`)
		assert.Equal(t, "q\n  Translation:\n    ", resp.Explain(formatters.PlainFormatter{}))
	})
}

func TestExplainFull(t *testing.T) {
	t.Run("single phonetic", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":0,"query":"good","translation":["好"],"basic":{"explains":["adj. 好的"],"phonetic":"gʊd"}}`)
		out := resp.Explain(tagFormatter{})
		assert.True(t, strings.HasPrefix(out, "<u>good</u>"))
		assert.Contains(t, out, "[<yellow>gʊd</yellow>]")
		assert.Equal(t, strings.Join([]string{
			"<u>good</u> [<yellow>gʊd</yellow>] <plain>好</plain>",
			"<cyan>  Word Explanation:</cyan>",
			"<plain>     * adj. 好的</plain>",
		}, "\n"), out)
		assert.Equal(t, "good [gʊd] 好\n  Word Explanation:\n     * adj. 好的", resp.Explain(formatters.PlainFormatter{}))
	})
	t.Run("full", func(t *testing.T) {
		resp := mustParse(t, fullResponse)
		assert.Equal(t, strings.Join([]string{
			"<u>hello</u>  UK: [<yellow>həˈləʊ</yellow>], US: [<yellow>həˈloʊ</yellow>] <plain>你好</plain>",
			"<cyan>  Word Explanation:</cyan>",
			"<plain>     * int. 喂；哈罗</plain>",
			"<plain>     * n. 表示问候</plain>",
			"<cyan>  Web Reference:</cyan>",
			"     * <yellow>Hello</yellow>",
			"       <purple>你好</purple>；<purple>您好</purple>；<purple>哈啰</purple>",
			"     * <yellow>Hello Kitty</yellow>",
			"       <purple>凯蒂猫</purple>",
		}, "\n"), resp.Explain(tagFormatter{}))
	})
	t.Run("translations joined", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":0,"query":"q","translation":["a","b"],"basic":{"explains":[]}}`)
		assert.Equal(t, "q  a; b", resp.Explain(formatters.PlainFormatter{}))
	})
	t.Run("empty explains", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":0,"query":"q","basic":{"explains":[],"phonetic":"p"}}`)
		out := resp.Explain(formatters.PlainFormatter{})
		assert.Equal(t, "q [p] ", out)
		assert.NotContains(t, out, "Word Explanation")
	})
	t.Run("web only", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":"0","query":"q","web":[{"key":"k","value":[]}]}`)
		assert.Equal(t, "q  \n  Web Reference:\n     * k\n       ", resp.Explain(formatters.PlainFormatter{}))
	})
	t.Run("empty web", func(t *testing.T) {
		resp := mustParse(t, `{"errorCode":"0","query":"q","translation":["t"],"web":[]}`)
		out := resp.Explain(formatters.PlainFormatter{})
		assert.Equal(t, "q  t", out)
		assert.NotContains(t, out, "Web Reference")
	})
}

func TestExplainPhonetic(t *testing.T) {
	cases := []struct {
		name     string
		basic    string
		expected string
	}{
		{"regional over single", `{"explains":[],"phonetic":"p","us-phonetic":"us","uk-phonetic":"uk"}`, " UK: [uk], US: [us]"},
		{"single", `{"explains":[],"phonetic":"p"}`, "[p]"},
		{"none", `{"explains":[]}`, ""},
		{"only uk", `{"explains":[],"phonetic":"p","uk-phonetic":"uk"}`, " UK: [uk]"},
		{"only us", `{"explains":[],"us-phonetic":"us"}`, " US: [us]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := mustParse(t, `{"errorCode":0,"query":"q","basic":`+c.basic+`}`)
			assert.Equal(t, "q "+c.expected+" ", resp.Explain(formatters.PlainFormatter{}))
		})
	}
}

func TestExplainHTML(t *testing.T) {
	resp := mustParse(t, `{"errorCode":0,"query":"a<b","translation":["x&y"]}`)
	assert.Equal(t, "<u>a&lt;b</u>\n<b>  Translation:</b>\n    x&amp;y", resp.Explain(formatters.HTMLFormatter{}))
}
