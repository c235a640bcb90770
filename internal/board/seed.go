package board

// DefaultTitle is the heading of the built-in board.
const DefaultTitle = "🦞 Linux.do 鸿蒙项目任务面板"

// DefaultColumnTitle returns the built-in display title for id.
func DefaultColumnTitle(id ColumnID) string {
	switch id {
	case ColumnTodo:
		return "待办"
	case ColumnInProgress:
		return "进行中"
	case ColumnDone:
		return "已完成"
	}
	return string(id)
}

// DefaultColumns returns the built-in seed: five tasks across the three
// columns. Each call returns fresh slices.
func DefaultColumns() []Column {
	return []Column{
		{
			ID:    ColumnTodo,
			Title: DefaultColumnTitle(ColumnTodo),
			Tasks: []Task{
				{ID: "1", Title: "完善登录功能", Description: "支持 CSRF token"},
				{ID: "2", Title: "添加深色主题", Description: "适配深色模式"},
			},
		},
		{
			ID:    ColumnInProgress,
			Title: DefaultColumnTitle(ColumnInProgress),
			Tasks: []Task{
				{ID: "3", Title: "帖子详情页", Description: "显示回复列表"},
			},
		},
		{
			ID:    ColumnDone,
			Title: DefaultColumnTitle(ColumnDone),
			Tasks: []Task{
				{ID: "4", Title: "项目结构搭建", Description: "参考 ChatCube"},
				{ID: "5", Title: "API 服务封装", Description: "Discourse API"},
			},
		},
	}
}
