// Package ydresponse parses Youdao dictionary replies and explains them as text
package ydresponse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ParseError is returned when reply can't be parsed
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse youdao response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errMissingQuery     = errors.New("missing query")
	errMissingErrorCode = errors.New("missing errorCode")
)

type codeKind uint8

const (
	codeUnset codeKind = iota
	codeString
	codeNumber
)

// ErrorCode holds errorCode value which is either a string or a number
type ErrorCode struct {
	kind codeKind
	str  string
	num  json.Number
}

// StringCode creates string error code
func StringCode(s string) ErrorCode {
	return ErrorCode{kind: codeString, str: s}
}

// NumberCode creates numeric error code
func NumberCode(n int64) ErrorCode {
	return ErrorCode{kind: codeNumber, num: json.Number(strconv.FormatInt(n, 10))}
}

// IsSuccess returns true for "0" and 0
func (c ErrorCode) IsSuccess() bool {
	switch c.kind {
	case codeString:
		return c.str == "0"
	case codeNumber:
		n, err := c.num.Int64()
		return err == nil && n == 0
	}
	return false
}

// String returns code as it was sent
func (c ErrorCode) String() string {
	if c.kind == codeNumber {
		return c.num.String()
	}
	return c.str
}

// UnmarshalJSON accepts JSON strings and numbers, null leaves code unset
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ErrorCode{kind: codeString, str: s}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	num, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("errorCode must be a string or a number, got %s", data)
	}
	*c = ErrorCode{kind: codeNumber, num: num}
	return nil
}

// MarshalJSON writes code in its original representation
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case codeString:
		return json.Marshal(c.str)
	case codeNumber:
		return []byte(c.num), nil
	}
	return []byte("null"), nil
}

// Basic holds detailed dictionary entry
type Basic struct {
	Explains   []string `json:"explains"`
	Phonetic   *string  `json:"phonetic"`
	USPhonetic *string  `json:"us-phonetic"`
	UKPhonetic *string  `json:"uk-phonetic"`
}

// UnmarshalJSON also accepts us_phonetic and uk_phonetic keys
func (b *Basic) UnmarshalJSON(data []byte) error {
	type basic Basic
	var aux struct {
		basic
		USPhoneticAlt *string `json:"us_phonetic"`
		UKPhoneticAlt *string `json:"uk_phonetic"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = Basic(aux.basic)
	if b.USPhonetic == nil {
		b.USPhonetic = aux.USPhoneticAlt
	}
	if b.UKPhonetic == nil {
		b.UKPhonetic = aux.UKPhoneticAlt
	}
	return nil
}

// WebReference holds a single web reference entry
type WebReference struct {
	Key   string   `json:"key"`
	Value []string `json:"value"`
}

// Response describes Youdao API reply
type Response struct {
	Query       string         `json:"query"`
	ErrorCode   ErrorCode      `json:"errorCode"`
	Translation []string       `json:"translation"`
	Basic       *Basic         `json:"basic"`
	Web         []WebReference `json:"web"`
}

// Parse parses raw JSON reply
func Parse(raw string) (Response, error) {
	return ParseBytes([]byte(raw))
}

// ParseBytes parses JSON reply from bytes
func ParseBytes(data []byte) (Response, error) {
	var wire struct {
		Response
		Query *string `json:"query"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Response{}, &ParseError{Err: err}
	}
	if wire.Query == nil || *wire.Query == "" {
		return Response{}, &ParseError{Err: errMissingQuery}
	}
	if wire.ErrorCode.kind == codeUnset {
		return Response{}, &ParseError{Err: errMissingErrorCode}
	}
	resp := wire.Response
	resp.Query = *wire.Query
	return resp, nil
}

// HasResult returns true if reply is successful and holds any data
func (r Response) HasResult() bool {
	if !r.ErrorCode.IsSuccess() {
		return false
	}
	return r.Translation != nil || r.Basic != nil || r.Web != nil
}
