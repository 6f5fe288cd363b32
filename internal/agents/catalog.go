package agents

// Categories group agents by audience.
const (
	CategoryJobSeeker = "job-seeker"
	CategoryRecruiter = "recruiter"
	CategoryAdmin     = "admin"
)

// Agent slugs.
const (
	ResumeBuilder     = "resume-builder"
	CoverLetterWriter = "cover-letter-writer"
	SalaryNegotiator  = "salary-negotiator"
	SkillGapAnalyzer  = "skill-gap-analyzer"
	JobPostingManager = "job-posting-manager"
	TalentPipeline    = "talent-pipeline"
	BillingManager    = "billing-manager"
	AuditLogViewer    = "audit-log-viewer"
	SystemMonitor     = "system-monitor"
	ContentModerator  = "content-moderator"
)

// Info describes one agent for the public catalog.
type Info struct {
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

// Catalog lists every agent the API serves, in display order.
var Catalog = []Info{
	{Slug: ResumeBuilder, Category: CategoryJobSeeker, Name: "Resume Builder", Description: "Create, import and auto-save resumes.", Resources: []string{"resumes"}},
	{Slug: CoverLetterWriter, Category: CategoryJobSeeker, Name: "Cover Letter Writer", Description: "Draft cover letters from tone templates.", Resources: []string{"cover-letters"}},
	{Slug: SalaryNegotiator, Category: CategoryJobSeeker, Name: "Salary Negotiator", Description: "Research pay ranges and negotiation tips.", Resources: []string{"salary-research"}},
	{Slug: SkillGapAnalyzer, Category: CategoryJobSeeker, Name: "Skill Gap Analyzer", Description: "Compare current skills against a target role.", Resources: []string{"skill-analyses"}},
	{Slug: JobPostingManager, Category: CategoryRecruiter, Name: "Job Posting Manager", Description: "Draft, publish and close job postings.", Resources: []string{"job-postings"}},
	{Slug: TalentPipeline, Category: CategoryRecruiter, Name: "Talent Pipeline", Description: "Track candidates through hiring stages.", Resources: []string{"candidates", "pipeline"}},
	{Slug: BillingManager, Category: CategoryAdmin, Name: "Billing Manager", Description: "Manage subscriptions, invoices and usage.", Resources: []string{"subscriptions", "invoices", "usage"}},
	{Slug: AuditLogViewer, Category: CategoryAdmin, Name: "Audit Log Viewer", Description: "Browse the append-only audit trail.", Resources: []string{"audit-logs"}},
	{Slug: SystemMonitor, Category: CategoryAdmin, Name: "System Monitor", Description: "Record and run component health checks.", Resources: []string{"health-checks"}},
	{Slug: ContentModerator, Category: CategoryAdmin, Name: "Content Moderator", Description: "Review and resolve flagged content.", Resources: []string{"content-flags"}},
}

// Lookup returns the catalog entry for slug.
func Lookup(slug string) (Info, bool) {
	for _, a := range Catalog {
		if a.Slug == slug {
			return a, true
		}
	}
	return Info{}, false
}
