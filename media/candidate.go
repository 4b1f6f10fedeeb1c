package media

// Candidate is one post that may be downloaded. It lives only for the
// duration of the download decision.
type Candidate struct {
	Title     string
	URL       string
	Subreddit string
	FileName  string
	Extension string
	SaveName  string
	NSFW      bool
}

// NewCandidate builds a Candidate from post fields.
// It reports false when the URL carries no recognisable file name.
func (n Namer) NewCandidate(title, url, subreddit string, nsfw bool) (*Candidate, bool) {
	f, ok := Extract(url)
	if !ok {
		return nil, false
	}
	return &Candidate{
		Title:     title,
		URL:       url,
		Subreddit: subreddit,
		FileName:  f.Name,
		Extension: f.Extension,
		SaveName:  n.SaveName(title, f.Name, f.Extension),
		NSFW:      nsfw,
	}, true
}

// NewCandidate is Namer.NewCandidate with DefaultMaxLength.
func NewCandidate(title, url, subreddit string, nsfw bool) (*Candidate, bool) {
	return Namer{MaxLength: DefaultMaxLength}.NewCandidate(title, url, subreddit, nsfw)
}

// Filename returns the name/extension pair the candidate was built from.
func (c *Candidate) Filename() Filename {
	return Filename{Name: c.FileName, Extension: c.Extension}
}
