package scheduler

import "container/heap"

// priorityQueue is a max-heap over tasks keyed by (priority, -created_at):
// higher priority always wins, and within the same priority the older
// task runs first. container/heap is Go's stdlib min-heap; priorityQueue's
// Less inverts the comparison so the container behaves as the max-heap
// the scheduler needs.
type queueItem struct {
	task  *Task
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].task.Priority != pq[j].task.Priority {
		return pq[i].task.Priority > pq[j].task.Priority
	}
	return pq[i].task.CreatedAt.Before(pq[j].task.CreatedAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// TaskQueue wraps priorityQueue behind a heap.Interface-driven API; it is
// not itself safe for concurrent use — the Scheduler guards every call
// with its own mutex.
type TaskQueue struct {
	items priorityQueue
}

// NewTaskQueue returns an empty, ready-to-use queue.
func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{}
	heap.Init(&q.items)
	return q
}

// Push adds task to the queue.
func (q *TaskQueue) Push(task *Task) {
	heap.Push(&q.items, &queueItem{task: task})
}

// Pop removes and returns the highest-priority, oldest task, or false
// if the queue is empty.
func (q *TaskQueue) Pop() (*Task, bool) {
	if q.items.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&q.items).(*queueItem)
	return item.task, true
}

// Len reports the number of queued tasks.
func (q *TaskQueue) Len() int { return q.items.Len() }
