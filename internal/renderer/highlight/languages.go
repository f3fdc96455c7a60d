package highlight

// DefaultExtension is the profile used for new documents and for files
// whose extension has no profile of its own.
const DefaultExtension = ".py"

const (
	quotedString = `('.*?'|".*?")`
	cStyleCall   = `(\w+)\s*\(`
	decimal      = `\b(\d+)\b`
	cStyleNote   = `(//.*|/\*.*?\*/)`
)

// languageSpec is the uncompiled definition of a built-in profile.
type languageSpec struct {
	ext   string
	name  string
	rules []RuleSpec
}

func builtinLanguages() []languageSpec {
	batch := []RuleSpec{
		{Category: CategoryKeyword, Pattern: `\b(echo|set|if|else|for|goto|call|exit|rem|cd|dir|type|copy|del|move)\b`},
		{Category: CategoryString, Pattern: quotedString},
		{Category: CategoryComment, Pattern: `(rem\s.*|::.*)$`},
		{Category: CategoryFunction, Pattern: `(:\w+)`},
	}

	return []languageSpec{
		{
			ext:  ".py",
			name: "Python",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `\b(and|as|assert|break|class|continue|def|del|elif|else|except|finally|for|from|global|if|import|in|is|lambda|nonlocal|not|or|pass|raise|return|try|while|with|yield)\b`},
				{Category: CategoryString, Pattern: `('''.*?'''|""".*?"""|'.*?'|".*?")`},
				{Category: CategoryComment, Pattern: `(#.*)`},
				{Category: CategoryFunction, Pattern: `def\s(\w+)\(`, Submatch: 1},
				{Category: CategoryNumber, Pattern: decimal},
			},
		},
		{ext: ".bat", name: "Batch", rules: batch},
		{ext: ".cmd", name: "Batch", rules: batch},
		{
			ext:  ".cpp",
			name: "C++",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `\b(auto|break|case|char|const|continue|default|do|double|else|enum|extern|float|for|goto|if|int|long|register|return|short|signed|sizeof|static|struct|switch|typedef|union|unsigned|void|volatile|while)\b`},
				{Category: CategoryString, Pattern: quotedString},
				{Category: CategoryComment, Pattern: cStyleNote},
				{Category: CategoryFunction, Pattern: cStyleCall, Submatch: 1},
				{Category: CategoryNumber, Pattern: decimal},
			},
		},
		{
			ext:  ".cs",
			name: "C#",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `\b(abstract|as|base|bool|break|byte|case|catch|char|checked|class|const|continue|decimal|default|delegate|do|double|else|enum|event|explicit|extern|false|finally|fixed|float|for|foreach|goto|if|implicit|in|int|interface|internal|is|lock|long|namespace|new|null|object|operator|out|override|params|private|protected|public|readonly|ref|return|sbyte|sealed|short|sizeof|stackalloc|static|string|struct|switch|this|throw|true|try|typeof|uint|ulong|unchecked|unsafe|ushort|using|virtual|void|volatile|while)\b`},
				{Category: CategoryString, Pattern: quotedString},
				{Category: CategoryComment, Pattern: cStyleNote},
				{Category: CategoryFunction, Pattern: cStyleCall, Submatch: 1},
				{Category: CategoryNumber, Pattern: decimal},
			},
		},
		{
			ext:  ".js",
			name: "JavaScript",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `\b(break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|finally|for|function|if|import|in|instanceof|new|return|super|switch|this|throw|try|typeof|var|void|while|with|yield)\b`},
				{Category: CategoryString, Pattern: "('.*?'|\".*?\"|`.*?`)"},
				{Category: CategoryComment, Pattern: cStyleNote},
				{Category: CategoryFunction, Pattern: cStyleCall, Submatch: 1},
				{Category: CategoryNumber, Pattern: decimal},
			},
		},
		{
			ext:  ".html",
			name: "HTML",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `(<[^>]*>)`},
				{Category: CategoryString, Pattern: quotedString},
				{Category: CategoryComment, Pattern: `(<!--.*?-->)`},
			},
		},
		{
			ext:  ".css",
			name: "CSS",
			rules: []RuleSpec{
				{Category: CategoryKeyword, Pattern: `(@media|@keyframes|@font-face|@import|[a-z-]+\s*:)`},
				{Category: CategoryString, Pattern: quotedString},
				{Category: CategoryComment, Pattern: `(/\*.*?\*/)`},
				{Category: CategorySelector, Pattern: `([.#][\w-]+)`},
			},
		},
	}
}
