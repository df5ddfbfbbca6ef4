// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package convert implements the TypeConverter registry: a mapping from
// scalar type identifier to a function that turns one token into a typed
// value, with a fixed built-in set and an extension hook.
//
// Thread Safety: Registry is safe for concurrent Convert calls. Register
// and Lookup take the registry's lock; nothing freezes a registry, so a
// Register call after parsing has started changes what later conversions
// use.
package convert

import (
	"fmt"
	"math/big"
	"net"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/AleutianAI/argflag/paramspec"
)

// Func converts a single token into a value, or reports why it could not.
// Registered converters never see the option name or surrounding context —
// that belongs to the caller (parser), which formats the final
// TypeConversionFailure message.
type Func func(token string) (any, error)

// Registry holds one Func per scalar paramspec.ValueType plus the
// case-insensitive-enums setting.
type Registry struct {
	mu                   sync.RWMutex
	converters           map[paramspec.ValueType]Func
	caseInsensitiveEnums bool
}

// NewRegistry builds a Registry with every built-in converter installed.
func NewRegistry(caseInsensitiveEnums bool) *Registry {
	r := &Registry{
		converters:           make(map[paramspec.ValueType]Func),
		caseInsensitiveEnums: caseInsensitiveEnums,
	}
	r.installBuiltins()
	return r
}

// Register adds or replaces the converter for vt. command.New creates a
// Model's registry, so callers extend it through Model.Converters after New
// returns.
func (r *Registry) Register(vt paramspec.ValueType, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[vt] = fn
}

// Lookup returns the converter registered for vt, if any.
func (r *Registry) Lookup(vt paramspec.ValueType) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.converters[vt]
	return fn, ok
}

// Convert converts token to vt. enumValues is consulted only when
// vt == paramspec.Enum; it is the exact-case (or, if caseInsensitiveEnums
// was set, fold-case) set of defined names for that enum.
//
// Convert does not itself return argerr.ErrMissingTypeConverter /
// ErrTypeConversionFailure — it returns the raw errors.New detail so the
// parser can build the option-scoped message. See
// parser.wrapConversionError.
func (r *Registry) Convert(vt paramspec.ValueType, token string, enumValues []string) (any, error) {
	if vt == paramspec.Enum {
		return r.convertEnum(token, enumValues)
	}
	fn, ok := r.Lookup(vt)
	if !ok {
		return nil, errMissingConverter{vt: vt}
	}
	return fn(token)
}

// errMissingConverter is the "no converter registered" error. It is
// unexported, so the parser recognizes it by its message prefix and maps
// it onto argerr.ErrMissingTypeConverter.
type errMissingConverter struct{ vt paramspec.ValueType }

func (e errMissingConverter) Error() string {
	return fmt.Sprintf("no converter registered for type %q", e.vt)
}

func (r *Registry) convertEnum(token string, enumValues []string) (any, error) {
	for _, v := range enumValues {
		if v == token {
			return v, nil
		}
		if r.caseInsensitiveEnums && strings.EqualFold(v, token) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%q is not one of %v", token, enumValues)
}

func (r *Registry) installBuiltins() {
	r.converters[paramspec.Bool] = convertBool
	r.converters[paramspec.Int] = convertInt
	r.converters[paramspec.Int64] = convertInt64
	r.converters[paramspec.BigInt] = convertBigInt
	r.converters[paramspec.Float64] = convertFloat64
	r.converters[paramspec.BigDecimal] = convertBigDecimal
	r.converters[paramspec.String] = convertString
	r.converters[paramspec.Char] = convertChar
	r.converters[paramspec.URL] = convertURL
	r.converters[paramspec.URI] = convertURI
	r.converters[paramspec.Path] = convertPath
	r.converters[paramspec.Date] = convertDate
	r.converters[paramspec.Time] = convertTime
	r.converters[paramspec.Charset] = convertCharset
	r.converters[paramspec.InetAddress] = convertInetAddress
	r.converters[paramspec.Pattern] = convertPattern
	r.converters[paramspec.UUID] = convertUUID
	r.converters[paramspec.Secret] = convertSecretToken
}

func convertBool(token string) (any, error) {
	switch {
	case strings.EqualFold(token, "true"):
		return true, nil
	case strings.EqualFold(token, "false"):
		return false, nil
	default:
		return nil, fmt.Errorf("%q is not true or false", token)
	}
}

func convertInt(token string) (any, error) {
	n, err := strconv.ParseInt(token, 0, 32)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func convertInt64(token string) (any, error) {
	n, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func convertBigInt(token string) (any, error) {
	n, ok := new(big.Int).SetString(stripIntPrefixForBig(token), intBaseFor(token))
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", token)
	}
	return n, nil
}

// intBaseFor/stripIntPrefixForBig pick the base for a big integer the way
// strconv.ParseInt(..., 0, ...) does for int64: "0x" is hex (the prefix is
// stripped and base 16 used), "0o"/"0b" are left to math/big's base-0
// prefix detection, and a bare leading "0" is legacy octal, so "0755"
// means the same thing whether it fits in an int64 or not.
func intBaseFor(token string) int {
	t := strings.TrimPrefix(strings.TrimPrefix(token, "-"), "+")
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		return 16
	}
	if strings.HasPrefix(t, "0o") || strings.HasPrefix(t, "0O") ||
		strings.HasPrefix(t, "0b") || strings.HasPrefix(t, "0B") {
		return 0
	}
	if len(t) > 1 && t[0] == '0' {
		return 8
	}
	return 10
}

func stripIntPrefixForBig(token string) string {
	sign := ""
	t := token
	if strings.HasPrefix(t, "-") || strings.HasPrefix(t, "+") {
		sign, t = t[:1], t[1:]
	}
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		return sign + t[2:]
	}
	return sign + t
}

func convertFloat64(token string) (any, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func convertBigDecimal(token string) (any, error) {
	f, ok := new(big.Float).SetString(token)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal number", token)
	}
	return f, nil
}

func convertString(token string) (any, error) {
	return token, nil
}

func convertChar(token string) (any, error) {
	if utf8.RuneCountInString(token) != 1 {
		return nil, fmt.Errorf("%q is not a single character", token)
	}
	r, _ := utf8.DecodeRuneInString(token)
	return r, nil
}

func convertURL(token string) (any, error) {
	u, err := url.Parse(token)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%q has no scheme", token)
	}
	return u, nil
}

func convertURI(token string) (any, error) {
	if !strfmt.IsURI(token) {
		return nil, fmt.Errorf("%q is not a valid URI", token)
	}
	u, err := url.Parse(token)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func convertPath(token string) (any, error) {
	return filepath.Clean(token), nil
}

func convertDate(token string) (any, error) {
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(token)); err != nil {
		return nil, fmt.Errorf("%q is not a yyyy-MM-dd date", token)
	}
	return d, nil
}

var timeShapes = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`^\d{2}:\d{2}$`), "15:04"},
	{regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), "15:04:05"},
	{regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}$`), "15:04:05.000"},
	{regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3}$`), "15:04:05,000"},
}

// errNotATimeOfDay is detected by the parser to build the
// "is not a HH:mm[:ss[.SSS]] time for option '<name>'" message; the converter itself has no option name to include.
type errNotATimeOfDay struct{ token string }

func (e errNotATimeOfDay) Error() string {
	return fmt.Sprintf("%q is not a HH:mm[:ss[.SSS]] time", e.token)
}

func convertTime(token string) (any, error) {
	for _, shape := range timeShapes {
		if shape.re.MatchString(token) {
			t, err := timeParseStrict(shape.layout, token)
			if err != nil {
				return nil, errNotATimeOfDay{token: token}
			}
			return t, nil
		}
	}
	return nil, errNotATimeOfDay{token: token}
}

// timeParseStrict parses token against layout with time.Parse, with no
// time zone and no calendar date. The exact shape has already been checked
// by the timeShapes regexps; time.Parse adds the range checks (hour < 24,
// minute and second < 60).
func timeParseStrict(layout, token string) (time.Time, error) {
	return time.Parse(layout, token)
}

var knownCharsets = map[string]string{
	"utf-8": "UTF-8", "utf8": "UTF-8",
	"us-ascii": "US-ASCII", "ascii": "US-ASCII",
	"iso-8859-1": "ISO-8859-1", "latin1": "ISO-8859-1",
	"utf-16": "UTF-16", "utf-16be": "UTF-16BE", "utf-16le": "UTF-16LE",
	"windows-1252": "windows-1252",
}

func convertCharset(token string) (any, error) {
	canonical, ok := knownCharsets[strings.ToLower(token)]
	if !ok {
		return nil, fmt.Errorf("%q is not a known charset", token)
	}
	return canonical, nil
}

var hostnameRE = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// InetAddress is the result of the InetAddress converter. Host is set for
// hostname-shaped tokens (never DNS-resolved here — the parser promises
// no internal I/O) and IP is set for literal addresses.
type InetAddress struct {
	IP   net.IP
	Host string
}

func convertInetAddress(token string) (any, error) {
	if ip := net.ParseIP(token); ip != nil {
		return InetAddress{IP: ip}, nil
	}
	if hostnameRE.MatchString(token) {
		return InetAddress{Host: token}, nil
	}
	return nil, fmt.Errorf("%q is not a valid address or hostname", token)
}

func convertPattern(token string) (any, error) {
	return regexp.Compile(token)
}

func convertUUID(token string) (any, error) {
	return uuid.Parse(token)
}

// convertSecretToken is a placeholder: the parser never calls this
// directly for Secret-typed specs. It routes Secret values through
// secret.New instead (see the parser's writeValue), because constructing a
// secret.Value needs the memguard-backed constructor, not a plain Func.
// This entry exists so Lookup/MissingTypeConverter behave consistently if
// a caller queries paramspec.Secret directly.
func convertSecretToken(token string) (any, error) {
	return token, nil
}
