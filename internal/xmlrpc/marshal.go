// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     xmlrpc
// Description: XML-RPC request encoding (methodCall documents)
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

// Package xmlrpc implements the subset of XML-RPC spoken by the PaperCut
// application server's web services endpoint: scalar, array and struct
// values plus the <nil/> extension the server accepts for omitted
// optional arguments.
package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

// iso8601 is the dateTime layout required by XML-RPC
const iso8601 = "20060102T15:04:05"

// Marshal encodes a method call with the given arguments into an
// XML-RPC methodCall document.
func Marshal(method string, args []interface{}) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0"?>`)
	buf.WriteString("<methodCall><methodName>")
	if err := xml.EscapeText(&buf, []byte(method)); err != nil {
		return nil, err
	}
	buf.WriteString("</methodName><params>")

	for _, arg := range args {
		buf.WriteString("<param>")
		if err := encodeValue(&buf, arg); err != nil {
			return nil, err
		}
		buf.WriteString("</param>")
	}

	buf.WriteString("</params></methodCall>")
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v interface{}) error {
	buf.WriteString("<value>")

	switch val := v.(type) {
	case nil:
		buf.WriteString("<nil/>")
	case string:
		buf.WriteString("<string>")
		if err := xml.EscapeText(buf, []byte(val)); err != nil {
			return err
		}
		buf.WriteString("</string>")
	case bool:
		if val {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case int:
		buf.WriteString("<int>")
		buf.WriteString(strconv.Itoa(val))
		buf.WriteString("</int>")
	case int64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatInt(val, 10))
		buf.WriteString("</int>")
	case float64:
		buf.WriteString("<double>")
		buf.WriteString(strconv.FormatFloat(val, 'f', -1, 64))
		buf.WriteString("</double>")
	case time.Time:
		buf.WriteString("<dateTime.iso8601>")
		buf.WriteString(val.Format(iso8601))
		buf.WriteString("</dateTime.iso8601>")
	case []byte:
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(val))
		buf.WriteString("</base64>")
	case []string:
		buf.WriteString("<array><data>")
		for _, item := range val {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case []interface{}:
		buf.WriteString("<array><data>")
		for _, item := range val {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case map[string]interface{}:
		buf.WriteString("<struct>")
		for name, member := range val {
			buf.WriteString("<member><name>")
			if err := xml.EscapeText(buf, []byte(name)); err != nil {
				return err
			}
			buf.WriteString("</name>")
			if err := encodeValue(buf, member); err != nil {
				return err
			}
			buf.WriteString("</member>")
		}
		buf.WriteString("</struct>")
	default:
		return fmt.Errorf("xmlrpc: unsupported argument type %T", v)
	}

	buf.WriteString("</value>")
	return nil
}
