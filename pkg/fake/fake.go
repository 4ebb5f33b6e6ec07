// Package fake generates random teacher and student records for demos and
// tests. Field values are drawn by a gofuzz Fuzzer with custom fill funcs, so a
// fixed seed yields a reproducible sequence. Ids are assigned from a counter
// and are unique per Generator.
package fake

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	fuzz "github.com/google/gofuzz"

	"github.com/goliatone/go-cards/pkg/model"
)

var (
	firstNames = []string{
		"Ada", "Alan", "Barbara", "Claude", "Dennis", "Edsger", "Frances",
		"Grace", "Hedy", "John", "Katherine", "Ken", "Linus", "Margaret",
		"Niklaus", "Radia", "Rob", "Sophie", "Tim", "Yukihiro",
	}
	lastNames = []string{
		"Allen", "Bartik", "Dijkstra", "Hamilton", "Hopper", "Johnson",
		"Kernighan", "Lamarr", "Liskov", "Lovelace", "Perlman", "Pike",
		"Ritchie", "Shannon", "Thompson", "Torvalds", "Turing", "Wirth",
	}
	subjects = []string{
		"English", "Maths", "Physics", "Chemistry", "Biology", "History",
		"Geography", "Music", "Sport", "Computing",
	}
	schools = []string{
		"Hogwarts", "Springfield Elementary", "Xavier Institute",
		"Sunnydale High", "Bayside High", "Greendale",
	}
)

// Option configures a Generator.
type Option func(*config)

type config struct {
	seed    int64
	seeded  bool
	startID int
}

// WithSeed fixes the random source so sequences are reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithStartID sets the id handed to the first generated record.
func WithStartID(id int) Option {
	return func(cfg *config) {
		if id > 0 {
			cfg.startID = id
		}
	}
}

// Generator produces records. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	fuzzer *fuzz.Fuzzer
	nextID int
}

// New constructs a Generator. Without WithSeed the source is seeded from
// crypto/rand.
func New(options ...Option) *Generator {
	cfg := &config{startID: 1}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if !cfg.seeded {
		cfg.seed = newSeed()
	}

	fuzzer := fuzz.New().
		RandSource(rand.NewSource(cfg.seed)).
		NilChance(0).
		Funcs(fillTeacher, fillStudent)

	return &Generator{
		fuzzer: fuzzer,
		nextID: cfg.startID,
	}
}

// Teacher returns a new teacher with a fresh id.
func (g *Generator) Teacher() model.Teacher {
	g.mu.Lock()
	defer g.mu.Unlock()

	var teacher model.Teacher
	g.fuzzer.Fuzz(&teacher)
	teacher.ID = g.takeID()
	return teacher
}

// Student returns a new student with a fresh id. The embedded main teacher
// also consumes an id so ids stay unique across both record kinds.
func (g *Generator) Student() model.Student {
	g.mu.Lock()
	defer g.mu.Unlock()

	var student model.Student
	g.fuzzer.Fuzz(&student)
	student.MainTeacher.ID = g.takeID()
	student.ID = g.takeID()
	return student
}

// Teachers returns n teachers.
func (g *Generator) Teachers(n int) []model.Teacher {
	if n <= 0 {
		return nil
	}
	out := make([]model.Teacher, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Teacher())
	}
	return out
}

// Students returns n students.
func (g *Generator) Students(n int) []model.Student {
	if n <= 0 {
		return nil
	}
	out := make([]model.Student, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Student())
	}
	return out
}

// Reserve moves the id counter past id so records loaded from elsewhere are
// never shadowed by generated ones.
func (g *Generator) Reserve(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

func (g *Generator) takeID() int {
	id := g.nextID
	g.nextID++
	return id
}

func fillTeacher(t *model.Teacher, c fuzz.Continue) {
	t.FirstName = pick(c, firstNames)
	t.LastName = pick(c, lastNames)
	t.Subject = pick(c, subjects)
}

func fillStudent(s *model.Student, c fuzz.Continue) {
	s.FirstName = pick(c, firstNames)
	s.LastName = pick(c, lastNames)
	s.School = pick(c, schools)
	c.Fuzz(&s.MainTeacher)
}

func pick(c fuzz.Continue, values []string) string {
	return values[c.Intn(len(values))]
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Int63()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func defaultGenerator() *Generator {
	defaultOnce.Do(func() {
		defaultGen = New()
	})
	return defaultGen
}

// RandTeacher returns a teacher from the package level generator.
func RandTeacher() model.Teacher {
	return defaultGenerator().Teacher()
}

// RandStudent returns a student from the package level generator.
func RandStudent() model.Student {
	return defaultGenerator().Student()
}
