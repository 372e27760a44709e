package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Class is the rarity tier of an item.
type Class int

const (
	ClassNone Class = iota
	ClassWhite
	ClassGreen
	ClassRed
	ClassYellow
	ClassOrange
	ClassPurple
	ClassGrey
)

var classNames = map[Class]string{
	ClassNone:   "None",
	ClassWhite:  "White",
	ClassGreen:  "Green",
	ClassRed:    "Red",
	ClassYellow: "Yellow",
	ClassOrange: "Orange",
	ClassPurple: "Purple",
	ClassGrey:   "Grey",
}

// manifest spelling -> class; "misc" items are grey
var manifestClasses = map[string]Class{
	"white":  ClassWhite,
	"green":  ClassGreen,
	"red":    ClassRed,
	"yellow": ClassYellow,
	"orange": ClassOrange,
	"purple": ClassPurple,
	"misc":   ClassGrey,
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return classNames[ClassNone]
}

// UnmarshalJSON never fails: unknown or non-string values decode to ClassNone.
func (c *Class) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*c = ClassNone
		return nil
	}
	*c = manifestClasses[s]
	return nil
}

// MarshalJSON writes the manifest spelling back out.
func (c Class) MarshalJSON() ([]byte, error) {
	for k, v := range manifestClasses {
		if v == c {
			return json.Marshal(k)
		}
	}
	return json.Marshal("none")
}

// Item is one entry of the manifest "items" section. Only Name,
// Description and Class are always present.
type Item struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cooldown    *float64 `json:"cooldown,omitempty"`
	Embryo      *string  `json:"embryo,omitempty"`
	Stack       *string  `json:"stack,omitempty"`
	Unlock      *string  `json:"unlock,omitempty"`
	Drop        *string  `json:"drop,omitempty"`
	HasVideo    *bool    `json:"hasVideo,omitempty"`
	MaxStacks   *int     `json:"maxStacks,omitempty"`
	Class       Class    `json:"itemClass"`
}

const notAvailable = "N/A"

func textOrNA(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}

// CooldownSeconds returns the cooldown, or 0 when the item has none.
func (i Item) CooldownSeconds() float64 {
	if i.Cooldown == nil {
		return 0
	}
	return *i.Cooldown
}

func (i Item) EmbryoText() string { return textOrNA(i.Embryo) }
func (i Item) StackText() string  { return textOrNA(i.Stack) }
func (i Item) UnlockText() string { return textOrNA(i.Unlock) }
func (i Item) DropText() string   { return textOrNA(i.Drop) }

func (i Item) HasVideoClip() bool {
	return i.HasVideo != nil && *i.HasVideo
}

func (i Item) MaxStackSize() int {
	if i.MaxStacks == nil {
		return 0
	}
	return *i.MaxStacks
}

// Fields lists the item's values in display order with defaults applied.
func (i Item) Fields() [][2]string {
	return [][2]string{
		{"Name", i.Name},
		{"Description", i.Description},
		{"Cooldown", strconv.FormatFloat(i.CooldownSeconds(), 'f', -1, 64)},
		{"Embryo", i.EmbryoText()},
		{"Stack", i.StackText()},
		{"Unlock", i.UnlockText()},
		{"Drop", i.DropText()},
		{"Has Video", strconv.FormatBool(i.HasVideoClip())},
		{"Max Stack Size", strconv.Itoa(i.MaxStackSize())},
		{"Item Class", i.Class.String()},
	}
}

func (i Item) String() string {
	fields := i.Fields()
	parts := make([]string, len(fields))
	for n, f := range fields {
		parts[n] = fmt.Sprintf("%s: %s", f[0], f[1])
	}
	return strings.Join(parts, ", ")
}
