package message

// Level is one of the five built-in message categories. Levels are
// independent presentation channels; there is no ordering or priority
// between them.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelLoading
	LevelSuccess
)

// String returns the string representation of the Level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelLoading:
		return "loading"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Levels returns all built-in levels in declaration order.
func Levels() []Level {
	return []Level{LevelError, LevelWarn, LevelInfo, LevelLoading, LevelSuccess}
}

// Type identifies a message channel: either a built-in level or a custom
// channel keyed by its element id. Exactly one presentation element backs
// each Type at any time.
type Type struct {
	builtin bool
	level   Level
	custom  string
}

// Builtin returns the Type for a built-in level.
func Builtin(l Level) Type {
	return Type{builtin: true, level: l}
}

// Custom returns the Type for a custom message element id.
func Custom(id string) Type {
	return Type{custom: id}
}

// GlobalType is the reserved sentinel addressing the global hook bundle.
// Hooks set on it observe every message channel's triggers.
var GlobalType = Type{custom: "\x00global"}

// IsBuiltin reports whether the type is one of the five built-in levels.
func (t Type) IsBuiltin() bool { return t.builtin }

// IsGlobal reports whether the type is the global sentinel.
func (t Type) IsGlobal() bool { return t == GlobalType }

// IsZero reports whether the type is unset.
func (t Type) IsZero() bool { return t == Type{} }

// Level returns the built-in level and whether the type is built-in.
func (t Type) Level() (Level, bool) { return t.level, t.builtin }

// CustomID returns the custom element id (empty for built-in types).
func (t Type) CustomID() string {
	if t.builtin || t.IsGlobal() {
		return ""
	}
	return t.custom
}

// String returns the string representation of the Type.
func (t Type) String() string {
	switch {
	case t.builtin:
		return t.level.String()
	case t.IsGlobal():
		return "global"
	case t.custom == "":
		return "unset"
	default:
		return t.custom
	}
}
