package model

// List operations never mutate their input; callers swap in the returned slice.

// Prepend puts t in front of tasks (newest first).
func Prepend(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

// Index returns the position of id in tasks, or -1.
func Index(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Toggle flips Done on the task with the given id. Order is unchanged.
func Toggle(tasks []Task, id string) ([]Task, bool) {
	out := Clone(tasks)
	i := Index(out, id)
	if i < 0 {
		return out, false
	}
	out[i].Done = !out[i].Done
	return out, true
}

// Remove drops the task with the given id, keeping the rest in order.
func Remove(tasks []Task, id string) ([]Task, bool) {
	i := Index(tasks, id)
	if i < 0 {
		return Clone(tasks), false
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...), true
}

// ClearCompleted keeps only pending tasks and reports how many were dropped.
func ClearCompleted(tasks []Task) ([]Task, int) {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out, len(tasks) - len(out)
}

// Stats counts all tasks and the completed ones.
func Stats(tasks []Task) (total, done int) {
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return len(tasks), done
}

// Clone returns a copy that never aliases tasks.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
