package cryptography

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// phcHash is a parsed password hash string of the form
// $id[$v=version]$k=v,k=v$salt$hash with unpadded standard base64 fields.
type phcHash struct {
	ID      string
	Version int
	Params  map[string]string
	Order   []string
	Salt    []byte
	Hash    []byte
}

// String encodes the hash. Parameters keep their insertion order.
func (h *phcHash) String() string {
	var b strings.Builder
	b.WriteString("$")
	b.WriteString(h.ID)
	if h.Version != 0 {
		fmt.Fprintf(&b, "$v=%d", h.Version)
	}

	pairs := make([]string, 0, len(h.Order))
	for _, k := range h.Order {
		pairs = append(pairs, k+"="+h.Params[k])
	}
	b.WriteString("$")
	b.WriteString(strings.Join(pairs, ","))

	b.WriteString("$")
	b.WriteString(base64.RawStdEncoding.EncodeToString(h.Salt))
	b.WriteString("$")
	b.WriteString(base64.RawStdEncoding.EncodeToString(h.Hash))
	return b.String()
}

func (h *phcHash) set(key string, value int) {
	if h.Params == nil {
		h.Params = make(map[string]string)
	}
	if _, ok := h.Params[key]; !ok {
		h.Order = append(h.Order, key)
	}
	h.Params[key] = strconv.Itoa(value)
}

// intParam returns a positive integer parameter no larger than max.
func (h *phcHash) intParam(key string, max int) (int, error) {
	raw, ok := h.Params[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrMalformedHash, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > max {
		return 0, fmt.Errorf("%w: parameter %q out of range", ErrMalformedHash, key)
	}
	return n, nil
}

func parsePHC(encoded string) (*phcHash, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) < 5 || fields[0] != "" || fields[1] == "" {
		return nil, fmt.Errorf("%w: unexpected field count", ErrMalformedHash)
	}

	h := &phcHash{ID: fields[1], Params: make(map[string]string)}
	rest := fields[2:]

	if strings.HasPrefix(rest[0], "v=") {
		v, err := strconv.Atoi(strings.TrimPrefix(rest[0], "v="))
		if err != nil {
			return nil, fmt.Errorf("%w: bad version", ErrMalformedHash)
		}
		h.Version = v
		rest = rest[1:]
	}
	if len(rest) != 3 {
		return nil, fmt.Errorf("%w: unexpected field count", ErrMalformedHash)
	}

	for _, pair := range strings.Split(rest[0], ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: bad parameter %q", ErrMalformedHash, pair)
		}
		if _, dup := h.Params[k]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrMalformedHash, k)
		}
		h.Params[k] = v
		h.Order = append(h.Order, k)
	}

	var err error
	if h.Salt, err = base64.RawStdEncoding.DecodeString(rest[1]); err != nil {
		return nil, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}
	if h.Hash, err = base64.RawStdEncoding.DecodeString(rest[2]); err != nil {
		return nil, fmt.Errorf("%w: bad hash encoding", ErrMalformedHash)
	}
	if len(h.Salt) == 0 || len(h.Hash) == 0 {
		return nil, fmt.Errorf("%w: empty salt or hash", ErrMalformedHash)
	}
	return h, nil
}
