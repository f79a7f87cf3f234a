package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/abimath/internal/app/models"
)

// MemoryStore is an in-process UnitOfWork with the same constraints as the
// Postgres schema. Transactions are serialized; a failed Do restores the
// snapshot taken when it started.
type MemoryStore struct {
	mu            sync.Mutex
	classes       map[int64]*models.Class
	students      map[int64]*models.Student
	nextClassID   int64
	nextStudentID int64
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		classes:       map[int64]*models.Class{},
		students:      map[int64]*models.Student{},
		nextClassID:   1,
		nextStudentID: 1,
	}
}

type memorySnapshot struct {
	classes       map[int64]*models.Class
	students      map[int64]*models.Student
	nextClassID   int64
	nextStudentID int64
}

func (m *MemoryStore) snapshot() memorySnapshot {
	s := memorySnapshot{
		classes:       make(map[int64]*models.Class, len(m.classes)),
		students:      make(map[int64]*models.Student, len(m.students)),
		nextClassID:   m.nextClassID,
		nextStudentID: m.nextStudentID,
	}
	for id, c := range m.classes {
		s.classes[id] = copyClass(c)
	}
	for id, st := range m.students {
		s.students[id] = copyStudent(st)
	}
	return s
}

func (m *MemoryStore) restore(s memorySnapshot) {
	m.classes = s.classes
	m.students = s.students
	m.nextClassID = s.nextClassID
	m.nextStudentID = s.nextStudentID
}

// Do implements UnitOfWork
func (m *MemoryStore) Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	defer func() {
		if r := recover(); r != nil {
			m.restore(snap)
			panic(r)
		}
		if err != nil {
			m.restore(snap)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, memoryTx{m})
}

// Counts returns the number of stored classes and students.
func (m *MemoryStore) Counts() (classes, students int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.classes), len(m.students)
}

func copyClass(c *models.Class) *models.Class {
	out := *c
	out.ResultSet = c.ResultSet.Clone()
	return &out
}

func copyStudent(s *models.Student) *models.Student {
	out := *s
	out.ResultSet = s.ResultSet.Clone()
	return &out
}

type memoryTx struct{ m *MemoryStore }

func (t memoryTx) Classes() ClassStore    { return memoryClasses(t) }
func (t memoryTx) Students() StudentStore { return memoryStudents(t) }

type memoryClasses struct{ m *MemoryStore }

func (r memoryClasses) nameTaken(name string, exceptID int64) bool {
	for id, c := range r.m.classes {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r memoryClasses) Create(_ context.Context, class *models.Class) (int64, error) {
	if r.nameTaken(class.Name, 0) {
		return 0, ErrDuplicate
	}
	id := r.m.nextClassID
	r.m.nextClassID++
	stored := copyClass(class)
	stored.ID = id
	r.m.classes[id] = stored
	return id, nil
}

func (r memoryClasses) GetByID(_ context.Context, id int64) (*models.Class, error) {
	c, ok := r.m.classes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyClass(c), nil
}

func (r memoryClasses) GetByName(_ context.Context, name string) (*models.Class, error) {
	for _, c := range r.m.classes {
		if c.Name == name {
			return copyClass(c), nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryClasses) List(_ context.Context) ([]*models.Class, error) {
	out := make([]*models.Class, 0, len(r.m.classes))
	for _, c := range r.m.classes {
		out = append(out, copyClass(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryClasses) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.m.classes[id]
	return ok, nil
}

func (r memoryClasses) Update(_ context.Context, class *models.Class) error {
	if _, ok := r.m.classes[class.ID]; !ok {
		return ErrNotFound
	}
	if r.nameTaken(class.Name, class.ID) {
		return ErrDuplicate
	}
	r.m.classes[class.ID] = copyClass(class)
	return nil
}

func (r memoryClasses) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.classes[id]; !ok {
		return ErrNotFound
	}
	for _, s := range r.m.students {
		if s.ClassID == id {
			return ErrMissingClass
		}
	}
	delete(r.m.classes, id)
	return nil
}

type memoryStudents struct{ m *MemoryStore }

func (r memoryStudents) check(s *models.Student) error {
	if _, ok := r.m.classes[s.ClassID]; !ok {
		return ErrMissingClass
	}
	for id, other := range r.m.students {
		if id != s.ID && other.ClassID == s.ClassID && other.Name == s.Name {
			return ErrDuplicate
		}
	}
	return nil
}

func (r memoryStudents) Create(_ context.Context, student *models.Student) (int64, error) {
	stored := copyStudent(student)
	stored.ID = 0
	if err := r.check(stored); err != nil {
		return 0, err
	}
	stored.ID = r.m.nextStudentID
	r.m.nextStudentID++
	r.m.students[stored.ID] = stored
	return stored.ID, nil
}

func (r memoryStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := r.m.students[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyStudent(s), nil
}

func (r memoryStudents) FindByClassAndName(_ context.Context, classID int64, name string) (*models.Student, error) {
	for _, s := range r.m.students {
		if s.ClassID == classID && s.Name == name {
			return copyStudent(s), nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryStudents) filter(keep func(*models.Student) bool) []*models.Student {
	out := []*models.Student{}
	for _, s := range r.m.students {
		if keep(s) {
			out = append(out, copyStudent(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memoryStudents) List(_ context.Context) ([]*models.Student, error) {
	return r.filter(func(*models.Student) bool { return true }), nil
}

func (r memoryStudents) ListByClass(_ context.Context, classID int64) ([]*models.Student, error) {
	return r.filter(func(s *models.Student) bool { return s.ClassID == classID }), nil
}

func (r memoryStudents) CountByClass(ctx context.Context, classID int64) (int64, error) {
	students, _ := r.ListByClass(ctx, classID)
	return int64(len(students)), nil
}

func (r memoryStudents) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.m.students[student.ID]; !ok {
		return ErrNotFound
	}
	if err := r.check(student); err != nil {
		return err
	}
	r.m.students[student.ID] = copyStudent(student)
	return nil
}

func (r memoryStudents) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.students[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.students, id)
	return nil
}
