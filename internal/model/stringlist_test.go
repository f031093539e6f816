// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "nil", src: nil, want: StringList{}},
		{name: "empty string", src: "", want: StringList{}},
		{name: "json null", src: "null", want: StringList{}},
		{name: "empty array", src: "[]", want: StringList{}},
		{name: "two items", src: `["a","b"]`, want: StringList{"a", "b"}},
		{name: "bytes", src: []byte(`["x"]`), want: StringList{"x"}},
		{name: "object is corrupt", src: `{"a":1}`, wantErr: true},
		{name: "numbers are corrupt", src: `[1,2]`, wantErr: true},
		{name: "plain text is corrupt", src: "a,b", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := got.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Scan(%v) expected error", tt.src)
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan(%v): %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%v) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestStringListValue(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want string
	}{
		{name: "nil", list: nil, want: "[]"},
		{name: "empty", list: StringList{}, want: "[]"},
		{name: "items", list: StringList{"a", "b"}, want: `["a","b"]`},
		{name: "quotes escaped", list: StringList{`say "hi"`}, want: `["say \"hi\""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			if v != tt.want {
				t.Errorf("Value() = %v, want %v", v, tt.want)
			}

			var back StringList
			if err := back.Scan(v); err != nil {
				t.Fatalf("Scan back: %v", err)
			}
			if len(back) != len(tt.list) {
				t.Errorf("round trip length = %d, want %d", len(back), len(tt.list))
			}
		})
	}
}

func TestStringListMarshalJSON(t *testing.T) {
	post := BlogPost{Title: "x"}
	data, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	tags, ok := raw["tags"].([]any)
	if !ok {
		t.Fatalf("tags = %#v, want empty array", raw["tags"])
	}
	if len(tags) != 0 {
		t.Errorf("len(tags) = %d, want 0", len(tags))
	}
}

func TestAdminUserPasswordHashHidden(t *testing.T) {
	u := AdminUser{Email: "a@example.com", PasswordHash: "$argon2id$secret", Role: RoleAdmin}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("invalid json: %s", data)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["passwordHash"]; ok {
		t.Error("password hash must not be serialised")
	}
	if !u.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
}
