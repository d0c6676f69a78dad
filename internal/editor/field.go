// Package editor 实现所见即所得编辑层：单个字段的就地编辑状态机
// 与照片上传校验。它不持有任何持久状态：已提交值永远以宿主
// 最近一次传入的为准，编辑层只拥有瞬态草稿。
package editor

// CommitFunc 把确认后的值连同字段路径上报给宿主。
// 调用方不等待宿主的持久化结果（乐观更新模型）。
type CommitFunc func(fieldPath string, value any)

// FieldState 是字段编辑状态机的两个状态。
type FieldState int

const (
	// StateDisplay 只读展示；编辑模式下点击进入编辑态。
	StateDisplay FieldState = iota
	// StateEditing 持有与已提交值分离的本地草稿。
	StateEditing
)

// Key 是驱动状态机的按键事件。
type Key int

const (
	KeyEnter Key = iota
	KeyEscape
)

// Field 是一个 (value, fieldPath) 对上的就地编辑状态机。
// 转换规则：
//
//	Display --Click(编辑模式)--> Editing(draft=当前值)
//	Editing --Enter(单行)/Blur--> 提交草稿，回到 Display
//	Editing --Escape--> 丢弃草稿，回到 Display，不提交
type Field struct {
	Path      string
	Multiline bool

	value  string
	draft  string
	state  FieldState
	commit CommitFunc
}

// NewField 构造处于展示态的字段。
func NewField(path, value string, multiline bool, commit CommitFunc) *Field {
	return &Field{Path: path, Multiline: multiline, value: value, commit: commit}
}

// SetValue 接收宿主下发的最新已提交值。
// 编辑中的草稿不受影响，展示值立即跟随。
func (f *Field) SetValue(v string) {
	f.value = v
}

// State 返回当前状态。
func (f *Field) State() FieldState { return f.state }

// Value 返回展示值（最近一次宿主传入的已提交值）。
func (f *Field) Value() string { return f.value }

// Draft 返回编辑态草稿；展示态下为空串。
func (f *Field) Draft() string {
	if f.state != StateEditing {
		return ""
	}
	return f.draft
}

// Click 在编辑模式下激活编辑态，草稿从当前值出发。
// 非编辑模式或已在编辑态时是 no-op。
func (f *Field) Click(editMode bool) {
	if !editMode || f.state == StateEditing {
		return
	}
	f.draft = f.value
	f.state = StateEditing
}

// Input 更新草稿；展示态下忽略。
func (f *Field) Input(draft string) {
	if f.state != StateEditing {
		return
	}
	f.draft = draft
}

// HandleKey 处理按键：Enter 在单行字段上提交（多行字段由 Blur 提交），
// Escape 丢弃草稿。返回是否发生了提交。
func (f *Field) HandleKey(k Key) bool {
	if f.state != StateEditing {
		return false
	}
	switch k {
	case KeyEnter:
		if f.Multiline {
			return false
		}
		f.commitDraft()
		return true
	case KeyEscape:
		f.draft = ""
		f.state = StateDisplay
		return false
	}
	return false
}

// Blur 失焦提交（单行与多行一致）。返回是否发生了提交。
func (f *Field) Blur() bool {
	if f.state != StateEditing {
		return false
	}
	f.commitDraft()
	return true
}

func (f *Field) commitDraft() {
	committed := f.draft
	f.value = committed
	f.draft = ""
	f.state = StateDisplay
	if f.commit != nil {
		f.commit(f.Path, committed)
	}
}
