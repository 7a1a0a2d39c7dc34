package domain

// Task represents an analysis task requested by the user
type Task string

const (
	// TaskImprovements reviews code and suggests improvements
	TaskImprovements Task = "improvements"
	// TaskDocumentation generates technical documentation
	TaskDocumentation Task = "documentation"
	// TaskCommitMessage generates a commit message from the staged diff
	TaskCommitMessage Task = "commit-message"
	// TaskApplyImprovements rewrites the staged changes as a patch
	TaskApplyImprovements Task = "apply-improvements"
)

// taskAliases maps legacy task names to their canonical form
var taskAliases = map[string]Task{
	"commits": TaskCommitMessage,
}

// AllTasks returns every supported task
func AllTasks() []Task {
	return []Task{TaskImprovements, TaskDocumentation, TaskCommitMessage, TaskApplyImprovements}
}

// ParseTask parses a task name, accepting legacy aliases
func ParseTask(s string) (Task, error) {
	if t, ok := taskAliases[s]; ok {
		return t, nil
	}
	t := Task(s)
	if t.Valid() {
		return t, nil
	}
	return "", NewUnknownTaskError(s)
}

// Valid reports whether the task is one of the supported set
func (t Task) Valid() bool {
	switch t {
	case TaskImprovements, TaskDocumentation, TaskCommitMessage, TaskApplyImprovements:
		return true
	}
	return false
}

// RequiresGit reports whether the task only makes sense against a Git
// repository. These tasks operate on "what is about to be committed",
// which an archive snapshot cannot express.
func (t Task) RequiresGit() bool {
	return t == TaskCommitMessage || t == TaskApplyImprovements
}

// UsesDiff reports whether the task consumes the staged diff rather
// than full file contents
func (t Task) UsesDiff() bool {
	return t == TaskCommitMessage || t == TaskApplyImprovements
}

// String returns the canonical task name
func (t Task) String() string {
	return string(t)
}

// SourceKind identifies where context is extracted from
type SourceKind string

const (
	// SourceGit extracts context from a version-control repository
	SourceGit SourceKind = "git"
	// SourceArchive extracts context from an uploaded archive
	SourceArchive SourceKind = "archive"
)

// FileContent is one file in a context map
type FileContent struct {
	Path    string
	Content string
}

// ContextMap is an ordered mapping from relative path to decoded text
// content. Keys are unique; iteration order is insertion order, which
// resolvers guarantee to be their canonical traversal order.
type ContextMap struct {
	entries []FileContent
	index   map[string]int
}

// NewContextMap creates an empty ContextMap
func NewContextMap() *ContextMap {
	return &ContextMap{index: make(map[string]int)}
}

// Set adds or replaces the content for a path
func (m *ContextMap) Set(path, content string) {
	if i, ok := m.index[path]; ok {
		m.entries[i].Content = content
		return
	}
	m.index[path] = len(m.entries)
	m.entries = append(m.entries, FileContent{Path: path, Content: content})
}

// Get returns the content for a path
func (m *ContextMap) Get(path string) (string, bool) {
	i, ok := m.index[path]
	if !ok {
		return "", false
	}
	return m.entries[i].Content, true
}

// Has reports whether the path is present
func (m *ContextMap) Has(path string) bool {
	_, ok := m.index[path]
	return ok
}

// Len returns the number of files
func (m *ContextMap) Len() int {
	return len(m.entries)
}

// Files returns the entries in insertion order
func (m *ContextMap) Files() []FileContent {
	return m.entries
}

// Paths returns the paths in insertion order
func (m *ContextMap) Paths() []string {
	paths := make([]string, len(m.entries))
	for i, e := range m.entries {
		paths[i] = e.Path
	}
	return paths
}

// MessageRole represents the role in a conversation
type MessageRole string

const (
	// RoleSystem represents a system message
	RoleSystem MessageRole = "system"
	// RoleUser represents a user message
	RoleUser MessageRole = "user"
	// RoleAssistant represents an assistant message
	RoleAssistant MessageRole = "assistant"
)

// LLMMessage represents a message in the conversation
type LLMMessage struct {
	Role    MessageRole
	Content string
}

// LLMRequest represents a completion request
type LLMRequest struct {
	Messages    []LLMMessage
	MaxTokens   int      // 0 = use provider default
	Temperature *float64 // nil = use provider default
}

// LLMResponse represents the LLM response
type LLMResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        LLMUsage
}

// LLMUsage contains token usage statistics
type LLMUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
