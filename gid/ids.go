package gid

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// ContextTag tags IDs minted for a per-(source,destination) reassembly context.
	ContextTag = "ctx"

	// FragmentTag tags IDs minted for a reassembled application fragment.
	FragmentTag = "frg"
)

// ContextID identifies one (source, destination) reassembly context across
// its lifetime in the context table. A context that is LRU-reclaimed and
// reused for a different address pair gets a fresh ContextID; the old one
// is never reused.
type ContextID struct {
	baseID
}

func (ContextID) GetType() string {
	return ContextTag
}

func (id ContextID) String() string {
	return String(id)
}

func NewContextID(u uuid.UUID) ContextID {
	return ContextID{baseID(u)}
}

func GenerateContextID() ContextID {
	return NewContextID(uuid.New())
}

func (id ContextID) MarshalText() ([]byte, error) {
	return toText(id)
}

func (id *ContextID) UnmarshalText(data []byte) error {
	return fromText(id, data)
}

// FragmentID identifies one reassembled application fragment. The
// dnp3.ChannelSink mints one for every app_fragment event it sends, and
// that event carries the fragment's raw link-frame bytes with it.
type FragmentID struct {
	baseID
}

func (FragmentID) GetType() string {
	return FragmentTag
}

func (id FragmentID) String() string {
	return String(id)
}

func NewFragmentID(u uuid.UUID) FragmentID {
	return FragmentID{baseID(u)}
}

func GenerateFragmentID() FragmentID {
	return NewFragmentID(uuid.New())
}

func (id FragmentID) MarshalText() ([]byte, error) {
	return toText(id)
}

func (id *FragmentID) UnmarshalText(data []byte) error {
	return fromText(id, data)
}

type tagToIDConstructor func(uuid.UUID) ID

var idConstructorMap = map[string]tagToIDConstructor{
	ContextTag:  func(u uuid.UUID) ID { return NewContextID(u) },
	FragmentTag: func(u uuid.UUID) ID { return NewFragmentID(u) },
}

func parseIDParts(str string) (string, uuid.UUID, error) {
	parts := strings.SplitN(str, "_", 2)
	if len(parts) != 2 {
		return "", uuid.Nil, errors.New("invalid gid structure")
	}
	idPart, err := decodeUUID(parts[1])
	if err != nil {
		return "", uuid.Nil, errors.Wrap(err, "invalid unique id part of gid")
	}
	return parts[0], idPart, nil
}

// ParseID parses the string form of any ID registered in this package.
func ParseID(str string) (ID, error) {
	tagName, uniquePart, err := parseIDParts(str)
	if err != nil {
		return nil, err
	}

	constructor := idConstructorMap[tagName]
	if constructor == nil {
		return nil, errors.Errorf("no known gid for tag %s", tagName)
	}

	return constructor(uniquePart), nil
}

// ParseIDAs parses str and assigns the result to destID, which must be a
// pointer to the concrete ID type encoded in str.
func ParseIDAs(str string, destID interface{}) error {
	id, err := ParseID(str)
	if err != nil {
		return errors.Wrapf(err, "parse ID failed: %s", str)
	}
	return assignTo(id, destID)
}
