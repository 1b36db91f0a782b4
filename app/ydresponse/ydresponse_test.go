package ydresponse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `{
	"errorCode": "0",
	"query": "hello",
	"translation": ["你好"],
	"basic": {
		"phonetic": "həˈləʊ",
		"us-phonetic": "həˈloʊ",
		"uk-phonetic": "həˈləʊ",
		"explains": ["int. 喂；哈罗", "n. 表示问候"]
	},
	"web": [
		{"key": "Hello", "value": ["你好", "您好", "哈啰"]},
		{"key": "Hello Kitty", "value": ["凯蒂猫"]}
	],
	"l": "EN2zh-CHS"
}`

func ptrStr(s string) *string {
	return &s
}

func TestParse(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		resp, err := Parse(fullResponse)
		require.NoError(t, err)
		expected := Response{
			Query:       "hello",
			ErrorCode:   StringCode("0"),
			Translation: []string{"你好"},
			Basic: &Basic{
				Explains:   []string{"int. 喂；哈罗", "n. 表示问候"},
				Phonetic:   ptrStr("həˈləʊ"),
				USPhonetic: ptrStr("həˈloʊ"),
				UKPhonetic: ptrStr("həˈləʊ"),
			},
			Web: []WebReference{
				{Key: "Hello", Value: []string{"你好", "您好", "哈啰"}},
				{Key: "Hello Kitty", Value: []string{"凯蒂猫"}},
			},
		}
		assert.Equal(t, expected, resp)
	})
	t.Run("numeric code", func(t *testing.T) {
		resp, err := Parse(`{"errorCode":0,"query":"good","translation":["好"]}`)
		require.NoError(t, err)
		assert.Equal(t, NumberCode(0), resp.ErrorCode)
		assert.True(t, resp.ErrorCode.IsSuccess())
	})
	t.Run("nulls", func(t *testing.T) {
		resp, err := Parse(`{"errorCode":"0","query":"xyzzy","translation":null,"basic":null,"web":null}`)
		require.NoError(t, err)
		assert.Equal(t, Response{Query: "xyzzy", ErrorCode: StringCode("0")}, resp)
	})
	t.Run("empty arrays", func(t *testing.T) {
		resp, err := Parse(`{"errorCode":"0","query":"q","translation":[],"web":[]}`)
		require.NoError(t, err)
		assert.NotNil(t, resp.Translation)
		assert.Empty(t, resp.Translation)
		assert.NotNil(t, resp.Web)
		assert.Nil(t, resp.Basic)
	})
	t.Run("snake case phonetics", func(t *testing.T) {
		resp, err := Parse(`{"errorCode":0,"query":"q","basic":{"explains":[],"us_phonetic":"us","uk_phonetic":"uk"}}`)
		require.NoError(t, err)
		require.NotNil(t, resp.Basic)
		assert.Equal(t, ptrStr("us"), resp.Basic.USPhonetic)
		assert.Equal(t, ptrStr("uk"), resp.Basic.UKPhonetic)
		assert.Nil(t, resp.Basic.Phonetic)
	})

	invalid := map[string]string{
		"not json":             "Invalid JSON",
		"missing query":        `{"errorCode":"0","translation":["a"]}`,
		"empty query":          `{"errorCode":"0","query":""}`,
		"query not string":     `{"errorCode":"0","query":1}`,
		"missing error code":   `{"query":"a"}`,
		"null error code":      `{"query":"a","errorCode":null}`,
		"bool error code":      `{"query":"a","errorCode":true}`,
		"object error code":    `{"query":"a","errorCode":{}}`,
		"invalid translations": `{"query":"a","errorCode":0,"translation":"a"}`,
		"invalid web":          `{"query":"a","errorCode":0,"web":[{"key":1}]}`,
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			resp, err := Parse(raw)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.Equal(t, Response{}, resp)
		})
	}
	t.Run("unwrap", func(t *testing.T) {
		_, err := Parse(`{"query":"a"}`)
		assert.ErrorIs(t, err, errMissingErrorCode)
	})
}

func TestErrorCode(t *testing.T) {
	success := map[string]string{
		"string zero": `"0"`,
		"number zero": `0`,
		"negative":    `-0`,
	}
	for name, raw := range success {
		t.Run(name, func(t *testing.T) {
			var code ErrorCode
			require.NoError(t, json.Unmarshal([]byte(raw), &code))
			assert.True(t, code.IsSuccess())
		})
	}
	failure := map[string]string{
		"string code":    `"108"`,
		"number code":    `202`,
		"padded string":  `"00"`,
		"fraction":       `0.5`,
		"empty string":   `""`,
		"string padding": `" 0"`,
	}
	for name, raw := range failure {
		t.Run(name, func(t *testing.T) {
			var code ErrorCode
			require.NoError(t, json.Unmarshal([]byte(raw), &code))
			assert.False(t, code.IsSuccess())
		})
	}
	t.Run("unset", func(t *testing.T) {
		assert.False(t, ErrorCode{}.IsSuccess())
	})
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "108", StringCode("108").String())
		assert.Equal(t, "202", NumberCode(202).String())
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		fullResponse,
		`{"errorCode":0,"query":"good","translation":["好"],"basic":{"explains":["adj. 好的"],"phonetic":"gʊd"}}`,
		`{"errorCode":"0","query":"xyzzy","translation":null,"basic":null,"web":null}`,
		`{"errorCode":"108","query":"q","translation":[],"web":[{"key":"k","value":[]}]}`,
	}
	for _, raw := range inputs {
		resp, err := Parse(raw)
		require.NoError(t, err)
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		parsed, err := ParseBytes(data)
		require.NoError(t, err)
		assert.Equal(t, resp, parsed)
	}
}

func TestHasResult(t *testing.T) {
	assert.True(t, Response{Query: "q", ErrorCode: NumberCode(0), Translation: []string{}}.HasResult())
	assert.True(t, Response{Query: "q", ErrorCode: StringCode("0"), Basic: &Basic{}}.HasResult())
	assert.True(t, Response{Query: "q", ErrorCode: StringCode("0"), Web: []WebReference{}}.HasResult())
	assert.False(t, Response{Query: "q", ErrorCode: StringCode("0")}.HasResult())
	assert.False(t, Response{Query: "q", ErrorCode: StringCode("1"), Translation: []string{"a"}}.HasResult())
}
