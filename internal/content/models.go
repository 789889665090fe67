package content

// Chapter is one syllabus chapter. ChapterNumber is the public curriculum
// number used for cross-referencing in uploads; ID is the storage identifier.
type Chapter struct {
	ID                   int64  `json:"id"`
	ChapterNumber        int    `json:"chapter_number"`
	TitleEn              string `json:"title_en"`
	TitleMr              string `json:"title_mr,omitempty"`
	ActChapterNameEn     string `json:"act_chapter_name_en,omitempty"`
	ActChapterNameMr     string `json:"act_chapter_name_mr,omitempty"`
	DescriptionEn        string `json:"description_en,omitempty"`
	DescriptionMr        string `json:"description_mr,omitempty"`
	MahareraEquivalentEn string `json:"maharera_equivalent_en,omitempty"`
	MahareraEquivalentMr string `json:"maharera_equivalent_mr,omitempty"`
	Sections             string `json:"sections,omitempty"` // JSON-encoded list, opaque here
	OrderIndex           int    `json:"order_index"`
	IsActive             bool   `json:"is_active"`
	DisplayInApp         bool   `json:"display_in_app"`
}

// Question is one bilingual MCQ. ChapterNumber is the upload-side reference;
// ChapterID is filled in once the number resolves against persisted chapters.
type Question struct {
	ID            int64  `json:"id"`
	ChapterID     int64  `json:"chapter_id"`
	ChapterNumber int    `json:"chapter_number,omitempty"`
	QuestionEn    string `json:"question_en"`
	QuestionMr    string `json:"question_mr,omitempty"`
	OptionAEn     string `json:"option_a_en"`
	OptionAMr     string `json:"option_a_mr,omitempty"`
	OptionBEn     string `json:"option_b_en"`
	OptionBMr     string `json:"option_b_mr,omitempty"`
	OptionCEn     string `json:"option_c_en"`
	OptionCMr     string `json:"option_c_mr,omitempty"`
	OptionDEn     string `json:"option_d_en"`
	OptionDMr     string `json:"option_d_mr,omitempty"`
	CorrectAnswer string `json:"correct_answer"` // A|B|C|D
	Difficulty    string `json:"difficulty"`     // EASY|MODERATE|HARD
	ExplanationEn string `json:"explanation_en,omitempty"`
	ExplanationMr string `json:"explanation_mr,omitempty"`
}

// QA is one question/answer pair inside a revision note's qa list.
type QA struct {
	QuestionEn string `json:"questionEn"`
	QuestionMr string `json:"questionMr"`
	AnswerEn   string `json:"answerEn"`
	AnswerMr   string `json:"answerMr"`
}

// Revision is one bilingual revision note for a chapter.
// (chapter_id, title_en, ord) is the natural key used for duplicate suppression.
type Revision struct {
	ID              int64  `json:"id"`
	ChapterID       int64  `json:"chapter_id"`
	ChapterNumber   int    `json:"chapter_number,omitempty"`
	ChapterNumberOK bool   `json:"-"` // false when the upload row had no usable chapter number
	TitleEn         string `json:"title_en"`
	TitleMr         string `json:"title_mr"`
	ContentEn       string `json:"content_en,omitempty"`
	ContentMr       string `json:"content_mr,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	QA              []QA   `json:"qa"`
	Order           int    `json:"order"`
}

// Enrollment records a paid (or pending) training-course signup.
type Enrollment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Course     string `json:"course"`
	PaymentRef string `json:"payment_ref,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

// ExamApplication is a mock-exam signup with its practice admit card.
type ExamApplication struct {
	ID         string `json:"id"`
	CardNumber string `json:"card_number"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Language   string `json:"language"` // en|mr
	ExamDate   string `json:"exam_date,omitempty"`
	Centre     string `json:"centre,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}
