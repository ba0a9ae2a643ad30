package pokemon

import (
	"bytes"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Name is a nested resource name. It decodes from either a bare string
// ("grass") or a named resource ({"name":"grass","url":"..."}) and always
// encodes as a bare string.
type Name string

func (n *Name) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode name: %w", err)
		}
		*n = Name(s)
		return nil
	}

	if data[0] != '{' {
		return fmt.Errorf("decode name: unexpected json %q", abbreviate(data))
	}

	var ref struct {
		Name string `json:"name"`
	}
	if err := sonic.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("decode named resource: %w", err)
	}
	*n = Name(ref.Name)
	return nil
}

func (n Name) String() string {
	return string(n)
}

func abbreviate(data []byte) string {
	if len(data) <= 32 {
		return string(data)
	}
	return string(data[:32]) + "..."
}
