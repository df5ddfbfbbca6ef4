// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/argflag/paramspec"
)

func TestConvertIntegralShapes(t *testing.T) {
	r := NewRegistry(false)
	testCases := []struct {
		name     string
		token    string
		expected int
	}{
		{name: "decimal", token: "42", expected: 42},
		{name: "hex", token: "0x2a", expected: 42},
		{name: "octal", token: "052", expected: 42},
		{name: "negative", token: "-7", expected: -7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Convert(paramspec.Int, tc.token, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestConvertBigIntLegacyOctal(t *testing.T) {
	r := NewRegistry(false)
	got, err := r.Convert(paramspec.BigInt, "0755", nil)
	require.NoError(t, err)
	assert.Equal(t, "493", got.(interface{ String() string }).String())
}

func TestConvertBool(t *testing.T) {
	r := NewRegistry(false)
	got, err := r.Convert(paramspec.Bool, "TRUE", nil)
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = r.Convert(paramspec.Bool, "nope", nil)
	assert.Error(t, err)
}

func TestConvertEnumCaseSensitivity(t *testing.T) {
	values := []string{"LOW", "MEDIUM", "HIGH"}

	sensitive := NewRegistry(false)
	_, err := sensitive.Convert(paramspec.Enum, "low", values)
	assert.Error(t, err)

	insensitive := NewRegistry(true)
	got, err := insensitive.Convert(paramspec.Enum, "low", values)
	require.NoError(t, err)
	assert.Equal(t, "LOW", got)
}

func TestConvertTimeShapes(t *testing.T) {
	r := NewRegistry(false)
	got, err := r.Convert(paramspec.Time, "13:45:07", nil)
	require.NoError(t, err)
	tm := got.(time.Time)
	assert.Equal(t, 13, tm.Hour())
	assert.Equal(t, 45, tm.Minute())
	assert.Equal(t, 7, tm.Second())

	_, err = r.Convert(paramspec.Time, "not-a-time", nil)
	assert.Error(t, err)
}

func TestConvertDate(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Convert(paramspec.Date, "2026-07-30", nil)
	require.NoError(t, err)

	_, err = r.Convert(paramspec.Date, "07/30/2026", nil)
	assert.Error(t, err)
}

func TestConvertUUID(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Convert(paramspec.UUID, "550e8400-e29b-41d4-a716-446655440000", nil)
	require.NoError(t, err)

	_, err = r.Convert(paramspec.UUID, "not-a-uuid", nil)
	assert.Error(t, err)
}

func TestConvertInetAddress(t *testing.T) {
	r := NewRegistry(false)
	got, err := r.Convert(paramspec.InetAddress, "127.0.0.1", nil)
	require.NoError(t, err)
	assert.NotNil(t, got.(InetAddress).IP)

	got, err = r.Convert(paramspec.InetAddress, "example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "example.com", got.(InetAddress).Host)

	_, err = r.Convert(paramspec.InetAddress, "not a host!", nil)
	assert.Error(t, err)
}

func TestConvertCharsetKnownAndUnknown(t *testing.T) {
	r := NewRegistry(false)
	got, err := r.Convert(paramspec.Charset, "utf8", nil)
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", got)

	_, err = r.Convert(paramspec.Charset, "not-a-charset", nil)
	assert.Error(t, err)
}

func TestMissingConverter(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.Convert(paramspec.ValueType("nonexistent"), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no converter registered")
}

func TestRegisterOverridesBuiltin(t *testing.T) {
	r := NewRegistry(false)
	r.Register(paramspec.String, func(token string) (any, error) {
		return "overridden:" + token, nil
	})
	got, err := r.Convert(paramspec.String, "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "overridden:x", got)
}
