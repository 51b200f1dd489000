package catalog

import (
	"sync/atomic"
)

// Post - элемент удаленной коллекции в серверном формате
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Catalog - неизменяемая коллекция постов. Создания принимаются и
// получают идентификатор, но в список не попадают: сервис имитирует
// публичную заглушку, которая не хранит чужие записи.
type Catalog struct {
	posts  []Post
	nextID atomic.Int64
}

func New() *Catalog {
	c := &Catalog{posts: seedPosts()}
	var max int64
	for _, p := range c.posts {
		if p.ID > max {
			max = p.ID
		}
	}
	c.nextID.Store(max + 1)
	return c
}

// List возвращает страницу коллекции, не больше limit элементов
func (c *Catalog) List(limit int) []Post {
	if limit <= 0 || limit > len(c.posts) {
		limit = len(c.posts)
	}
	page := make([]Post, limit)
	copy(page, c.posts[:limit])
	return page
}

// AssignID выдает свежий идентификатор для принятого создания.
// Сама запись никуда не сохраняется.
func (c *Catalog) AssignID() int64 {
	return c.nextID.Add(1) - 1
}

func seedPosts() []Post {
	return []Post{
		{ID: 1, Title: "The only way to do great work is to love what you do", Body: "Work"},
		{ID: 2, Title: "Success is not final, failure is not fatal", Body: "Perseverance"},
		{ID: 3, Title: "In the middle of difficulty lies opportunity", Body: "Wisdom"},
		{ID: 4, Title: "Simplicity is the ultimate sophistication", Body: "Design"},
		{ID: 5, Title: "What we think, we become", Body: "Mindset"},
		{ID: 6, Title: "Well begun is half done", Body: "Motivation"},
		{ID: 7, Title: "The journey of a thousand miles begins with one step", Body: "Wisdom"},
		{ID: 8, Title: "Quality is not an act, it is a habit", Body: "Work"},
		{ID: 9, Title: "Action is the foundational key to all success", Body: "Motivation"},
		{ID: 10, Title: "Knowing yourself is the beginning of all wisdom", Body: "Wisdom"},
	}
}
