package university

// Course is a unit of teaching. Students and professors refer to a course by
// pointer; the course itself knows nothing about them.
type Course struct {
	id      string
	title   string
	credits int

	registry *Registry
}

// NewCourse returns a course with every field validated.
func NewCourse(id, title string, credits int) (*Course, error) {
	c := &Course{}
	if err := c.SetID(id); err != nil {
		return nil, err
	}
	if err := c.SetTitle(title); err != nil {
		return nil, err
	}
	if err := c.SetCredits(credits); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Course) ID() string    { return c.id }
func (c *Course) Title() string { return c.title }
func (c *Course) Credits() int  { return c.credits }

// CourseTitle returns the title shown to people browsing the catalogue.
func (c *Course) CourseTitle() string { return c.title }

// CreditHours returns the credit value used for load computations.
func (c *Course) CreditHours() int { return c.credits }

// SetID changes the course id. A course held by a Registry is renamed
// through Registry.RenameCourse, so the new id must be unused there.
func (c *Course) SetID(id string) error {
	if c.registry != nil {
		return c.registry.RenameCourse(c.id, id)
	}
	v, err := requireText("courseId", id)
	if err != nil {
		return err
	}
	c.id = v
	return nil
}

func (c *Course) SetTitle(title string) error {
	v, err := requireText("title", title)
	if err != nil {
		return err
	}
	c.title = v
	return nil
}

func (c *Course) SetCredits(credits int) error {
	if err := checkVar("credits", credits, "gt=0"); err != nil {
		return err
	}
	c.credits = credits
	return nil
}

// valid reports whether c was built through NewCourse rather than being a
// nil pointer or a zero value.
func (c *Course) valid() bool {
	return c != nil && c.id != "" && c.title != "" && c.credits > 0
}

func (c *Course) String() string {
	if c == nil {
		return "<nil course>"
	}
	return c.id + " " + c.title
}

func courseRef(c *Course) string {
	if c == nil {
		return ""
	}
	return c.id
}
