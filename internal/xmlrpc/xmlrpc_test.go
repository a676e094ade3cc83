package xmlrpc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMarshalMethodCall(t *testing.T) {
	data, err := Marshal("api.getUserProperty", []interface{}{"token-1", "alice", "balance"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "<methodName>api.getUserProperty</methodName>") {
		t.Errorf("missing method name: %s", out)
	}
	if got := strings.Count(out, "<param>"); got != 3 {
		t.Errorf("param count = %d, want 3", got)
	}
	if !strings.Contains(out, "<value><string>token-1</string></value>") {
		t.Errorf("missing token param: %s", out)
	}
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{"string", "hello", "<string>hello</string>"},
		{"string escaped", "a<b&c", "<string>a&lt;b&amp;c</string>"},
		{"bool true", true, "<boolean>1</boolean>"},
		{"bool false", false, "<boolean>0</boolean>"},
		{"int", 42, "<int>42</int>"},
		{"int64", int64(-7), "<int>-7</int>"},
		{"double", 12.5, "<double>12.5</double>"},
		{"nil", nil, "<nil/>"},
		{"time", time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC), "<dateTime.iso8601>20260830T10:30:00</dateTime.iso8601>"},
		{"base64", []byte{1, 2, 3}, "<base64>AQID</base64>"},
		{"string slice", []string{"a", "b"}, "<array><data><value><string>a</string></value><value><string>b</string></value></data></array>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal("m", []interface{}{tt.arg})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Marshal(%v) = %s, want fragment %s", tt.arg, data, tt.want)
			}
		})
	}
}

func TestMarshalUnsupportedType(t *testing.T) {
	if _, err := Marshal("m", []interface{}{struct{}{}}); err == nil {
		t.Error("Marshal() should reject unsupported types")
	}
}

func TestUnmarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		body string
		want interface{}
	}{
		{"string", "<value><string>ok</string></value>", "ok"},
		{"untyped string", "<value>plain</value>", "plain"},
		{"int", "<value><int>17</int></value>", 17},
		{"i4", "<value><i4>-3</i4></value>", -3},
		{"bool", "<value><boolean>1</boolean></value>", true},
		{"double", "<value><double>2.75</double></value>", 2.75},
		{"nil", "<value><nil/></value>", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "<?xml version=\"1.0\"?><methodResponse><params><param>" + tt.body + "</param></params></methodResponse>"
			got, err := Unmarshal([]byte(doc))
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestUnmarshalArray(t *testing.T) {
	doc := `<?xml version="1.0"?><methodResponse><params><param><value><array><data>` +
		`<value><string>Mobility on PRINT01</string></value>` +
		`<value><string>Library Laser</string></value>` +
		`</data></array></value></param></params></methodResponse>`

	got, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []interface{}{"Mobility on PRINT01", "Library Laser"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unmarshal() = %v, want %v", got, want)
	}
}

func TestUnmarshalStruct(t *testing.T) {
	doc := `<?xml version="1.0"?><methodResponse><params><param><value><struct>` +
		`<member><name>completed</name><value><boolean>0</boolean></value></member>` +
		`<member><name>message</name><value><string>syncing</string></value></member>` +
		`</struct></value></param></params></methodResponse>`

	got, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	members, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("Unmarshal() = %T, want map", got)
	}
	if members["completed"] != false {
		t.Errorf("completed = %v, want false", members["completed"])
	}
	if members["message"] != "syncing" {
		t.Errorf("message = %v, want syncing", members["message"])
	}
}

func TestUnmarshalFault(t *testing.T) {
	doc := `<?xml version="1.0"?><methodResponse><fault><value><struct>` +
		`<member><name>faultCode</name><value><int>229</int></value></member>` +
		`<member><name>faultString</name><value><string>Invalid authentication token</string></value></member>` +
		`</struct></value></fault></methodResponse>`

	_, err := Unmarshal([]byte(doc))
	if err == nil {
		t.Fatal("Unmarshal() should return fault error")
	}

	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("error = %T, want *Fault", err)
	}
	if fault.Code != 229 {
		t.Errorf("Code = %d, want 229", fault.Code)
	}
	if fault.String != "Invalid authentication token" {
		t.Errorf("String = %q, want invalid token message", fault.String)
	}
}

func TestUnmarshalVoidResponse(t *testing.T) {
	doc := `<?xml version="1.0"?><methodResponse><params></params></methodResponse>`

	got, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != nil {
		t.Errorf("Unmarshal() = %v, want nil", got)
	}
}

func TestUnmarshalUnknownValueType(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"i8 scalar", "<value><i8>42</i8></value>"},
		{"made-up element", "<value><widget>x</widget></value>"},
		{"unknown inside array", "<value><array><data><value><i8>1</i8></value></data></array></value>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "<?xml version=\"1.0\"?><methodResponse><params><param>" + tt.body + "</param></params></methodResponse>"
			got, err := Unmarshal([]byte(doc))
			if err == nil {
				t.Fatalf("Unmarshal() = %v, want error for unknown value type", got)
			}
			if !strings.Contains(err.Error(), "unsupported value type") {
				t.Errorf("error = %v, want unsupported value type", err)
			}
		})
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	if _, err := Unmarshal([]byte("not xml at all")); err == nil {
		t.Error("Unmarshal() should reject malformed documents")
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := Marshal("api.listPrinters", []interface{}{"tok", 0, 100})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// The request document must be well-formed XML: reuse the value decoder
	// indirectly by checking the param fragments survive escaping.
	if !strings.HasPrefix(string(data), `<?xml version="1.0"?>`) {
		t.Errorf("missing XML declaration: %s", data)
	}
	if !strings.HasSuffix(string(data), "</methodCall>") {
		t.Errorf("missing closing tag: %s", data)
	}
}
