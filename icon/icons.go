package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Mark
	Progress
	Search
	Link
	Episode
	Stream
	Subtitle
	Module
	Key
)

// glyphs maps every variant to the text printed for one icon.
type glyphs map[Variant]string

var icons = map[Icon]glyphs{
	Success: {
		Emoji:   "🎉",
		Nerd:    "\uf00c",
		Plain:   "✓",
		Kaomoji: "(ᵔ◡ᵔ)",
		Squares: "🟩",
	},
	Fail: {
		Emoji:   "💀",
		Nerd:    "\uf00d",
		Plain:   "✗",
		Kaomoji: "(╥﹏╥)",
		Squares: "🟥",
	},
	Mark: {
		Emoji:   "✔️",
		Nerd:    "\uf14a",
		Plain:   "*",
		Kaomoji: "(* ^ ω ^)",
		Squares: "🟦",
	},
	Progress: {
		Emoji:   "⏳",
		Nerd:    "\uf110",
		Plain:   "...",
		Kaomoji: "(￣ ￣|||)",
		Squares: "🟨",
	},
	Search: {
		Emoji:   "🔍",
		Nerd:    "\uf002",
		Plain:   "?",
		Kaomoji: "(・_・ヾ",
		Squares: "🟪",
	},
	Link: {
		Emoji:   "🔗",
		Nerd:    "\uf0c1",
		Plain:   "->",
		Kaomoji: "(・∀・)つ",
		Squares: "🟫",
	},
	Episode: {
		Emoji:   "📺",
		Nerd:    "\uf26c",
		Plain:   "#",
		Kaomoji: "(☞ﾟヮﾟ)☞",
		Squares: "⬜",
	},
	Stream: {
		Emoji:   "▶️",
		Nerd:    "\uf04b",
		Plain:   ">",
		Kaomoji: "ᕕ( ᐛ )ᕗ",
		Squares: "🟧",
	},
	Subtitle: {
		Emoji:   "💬",
		Nerd:    "\uf20a",
		Plain:   "cc",
		Kaomoji: "(・ω・)ノ",
		Squares: "⬛",
	},
	Module: {
		Emoji:   "📦",
		Nerd:    "\uf487",
		Plain:   "@",
		Kaomoji: "(⌐■_■)",
		Squares: "🔳",
	},
	Key: {
		Emoji:   "🔑",
		Nerd:    "\uf084",
		Plain:   "$",
		Kaomoji: "( ´ ▽ ` )ﾉ",
		Squares: "🔲",
	},
}
