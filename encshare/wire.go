package encshare

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/f3rmion/elshare/group"
)

// chunkJSON is the wire form of one chunk: hex-encoded canonical point
// encodings.
type chunkJSON struct {
	C string `json:"c"`
	R string `json:"r"`
}

// multiJSON is the wire form of a MultiCiphertext. Chunks carry only C;
// the shared R is stored once.
type multiJSON struct {
	R          string              `json:"r"`
	Recipients map[string][]string `json:"recipients"`
}

func encodePoint(p group.Point) string {
	return hex.EncodeToString(p.Bytes())
}

func decodePoint(g group.Group, s string) (group.Point, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return g.NewPoint().SetBytes(data)
}

// MarshalJSON encodes ct as a list of {"c", "r"} objects.
func (ct Ciphertext) MarshalJSON() ([]byte, error) {
	out := make([]chunkJSON, len(ct))
	for j, c := range ct {
		out[j] = chunkJSON{C: encodePoint(c.C), R: encodePoint(c.R)}
	}
	return json.Marshal(out)
}

// MarshalJSON encodes mc with the shared R stored once and recipients
// keyed by their decimal index.
func (mc *MultiCiphertext) MarshalJSON() ([]byte, error) {
	out := multiJSON{
		R:          encodePoint(mc.R),
		Recipients: make(map[string][]string, len(mc.Ciphertexts)),
	}
	for i, ct := range mc.Ciphertexts {
		cs := make([]string, len(ct))
		for j, c := range ct {
			if !c.R.Equal(mc.R) {
				return nil, fmt.Errorf("recipient %d chunk %d does not use the shared R", i, j)
			}
			cs[j] = encodePoint(c.C)
		}
		out.Recipients[strconv.Itoa(i)] = cs
	}
	return json.Marshal(out)
}

// ParseCiphertext decodes a ciphertext produced by Ciphertext.MarshalJSON.
// Every point must be a valid encoding in e's group and the chunk count
// must match.
func (e *Encryptor) ParseCiphertext(data []byte) (Ciphertext, error) {
	var in []chunkJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse ciphertext: %w", err)
	}
	if len(in) != e.chunker.Count() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMalformedCiphertext, len(in), e.chunker.Count())
	}
	ct := make(Ciphertext, len(in))
	for j, c := range in {
		var err error
		if ct[j].C, err = decodePoint(e.group, c.C); err != nil {
			return nil, fmt.Errorf("chunk %d: invalid C: %w", j, err)
		}
		if ct[j].R, err = decodePoint(e.group, c.R); err != nil {
			return nil, fmt.Errorf("chunk %d: invalid R: %w", j, err)
		}
	}
	return ct, nil
}

// ParseMultiCiphertext decodes a ciphertext produced by
// MultiCiphertext.MarshalJSON.
func (e *Encryptor) ParseMultiCiphertext(data []byte) (*MultiCiphertext, error) {
	var in multiJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse ciphertext: %w", err)
	}
	R, err := decodePoint(e.group, in.R)
	if err != nil {
		return nil, fmt.Errorf("invalid R: %w", err)
	}

	keys := make([]string, 0, len(in.Recipients))
	for k := range in.Recipients {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &MultiCiphertext{R: R, Ciphertexts: make(map[int]Ciphertext, len(keys))}
	for _, k := range keys {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid recipient index %q", k)
		}
		cs := in.Recipients[k]
		if len(cs) != e.chunker.Count() {
			return nil, fmt.Errorf("recipient %d: %w", i, ErrMalformedCiphertext)
		}
		ct := make(Ciphertext, len(cs))
		for j, c := range cs {
			if ct[j].C, err = decodePoint(e.group, c); err != nil {
				return nil, fmt.Errorf("recipient %d chunk %d: %w", i, j, err)
			}
			ct[j].R = R
		}
		out.Ciphertexts[i] = ct
	}
	return out, nil
}
