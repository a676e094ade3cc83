// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     xmlrpc
// Description: XML-RPC response decoding (methodResponse documents, faults)
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package xmlrpc

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fault is a server-reported XML-RPC fault. It is returned as an error from
// Unmarshal so callers can distinguish it from transport problems.
type Fault struct {
	Code   int
	String string
}

// Error implements the error interface
func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc: fault %d: %s", f.Code, f.String)
}

// xmlValue mirrors an XML-RPC <value> element. An untyped value is a
// string per the XML-RPC specification; Other collects child elements no
// typed field matched, so an unrecognized value type fails decoding
// instead of degrading to its character data.
type xmlValue struct {
	Raw      string     `xml:",chardata"`
	String   *string    `xml:"string"`
	Int      *string    `xml:"int"`
	I4       *string    `xml:"i4"`
	Boolean  *string    `xml:"boolean"`
	Double   *string    `xml:"double"`
	DateTime *string    `xml:"dateTime.iso8601"`
	Base64   *string    `xml:"base64"`
	Nil      *struct{}  `xml:"nil"`
	Array    *xmlArray  `xml:"array"`
	Struct   *xmlStruct `xml:"struct"`
	Other    []xmlOther `xml:",any"`
}

type xmlOther struct {
	XMLName xml.Name
}

type xmlArray struct {
	Values []xmlValue `xml:"data>value"`
}

type xmlStruct struct {
	Members []xmlMember `xml:"member"`
}

type xmlMember struct {
	Name  string   `xml:"name"`
	Value xmlValue `xml:"value"`
}

type methodResponse struct {
	XMLName xml.Name `xml:"methodResponse"`
	Params  *struct {
		Params []struct {
			Value xmlValue `xml:"value"`
		} `xml:"param"`
	} `xml:"params"`
	Fault *struct {
		Value xmlValue `xml:"value"`
	} `xml:"fault"`
}

// Unmarshal decodes an XML-RPC methodResponse document. On a regular
// response the single param value is returned as a Go value (string, int,
// float64, bool, time.Time, []byte, []interface{} or
// map[string]interface{}). A fault response is returned as a *Fault error.
func Unmarshal(data []byte) (interface{}, error) {
	var resp methodResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("xmlrpc: malformed response: %w", err)
	}

	if resp.Fault != nil {
		return nil, decodeFault(&resp.Fault.Value)
	}

	if resp.Params == nil || len(resp.Params.Params) == 0 {
		// Void methods answer with an empty params element
		return nil, nil
	}
	if len(resp.Params.Params) > 1 {
		return nil, fmt.Errorf("xmlrpc: response carries %d params, want 1", len(resp.Params.Params))
	}

	return decodeValue(&resp.Params.Params[0].Value)
}

func decodeFault(v *xmlValue) error {
	decoded, err := decodeValue(v)
	if err != nil {
		return fmt.Errorf("xmlrpc: malformed fault: %w", err)
	}

	members, ok := decoded.(map[string]interface{})
	if !ok {
		return fmt.Errorf("xmlrpc: fault value is %T, want struct", decoded)
	}

	fault := &Fault{}
	if code, ok := members["faultCode"].(int); ok {
		fault.Code = code
	}
	if str, ok := members["faultString"].(string); ok {
		fault.String = str
	}
	return fault
}

func decodeValue(v *xmlValue) (interface{}, error) {
	switch {
	case v.Nil != nil:
		return nil, nil
	case v.String != nil:
		return *v.String, nil
	case v.Int != nil:
		return strconv.Atoi(strings.TrimSpace(*v.Int))
	case v.I4 != nil:
		return strconv.Atoi(strings.TrimSpace(*v.I4))
	case v.Boolean != nil:
		switch strings.TrimSpace(*v.Boolean) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		default:
			return nil, fmt.Errorf("xmlrpc: invalid boolean %q", *v.Boolean)
		}
	case v.Double != nil:
		return strconv.ParseFloat(strings.TrimSpace(*v.Double), 64)
	case v.DateTime != nil:
		return time.Parse(iso8601, strings.TrimSpace(*v.DateTime))
	case v.Base64 != nil:
		return base64.StdEncoding.DecodeString(strings.TrimSpace(*v.Base64))
	case v.Array != nil:
		items := make([]interface{}, 0, len(v.Array.Values))
		for i := range v.Array.Values {
			item, err := decodeValue(&v.Array.Values[i])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case v.Struct != nil:
		members := make(map[string]interface{}, len(v.Struct.Members))
		for i := range v.Struct.Members {
			m := &v.Struct.Members[i]
			val, err := decodeValue(&m.Value)
			if err != nil {
				return nil, err
			}
			members[m.Name] = val
		}
		return members, nil
	default:
		if len(v.Other) > 0 {
			return nil, fmt.Errorf("xmlrpc: unsupported value type <%s>", v.Other[0].XMLName.Local)
		}
		// Untyped value: treated as string
		return v.Raw, nil
	}
}
