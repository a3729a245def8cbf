package config

// Clustering constants. The dataset ships with labels produced by a k=3 fit,
// so the number of clusters and the seed are fixed alongside it.
const (
	NumClusters    = 3
	ClusterSeed    = 42
	KMeansMaxIters = 300
	KMeansRestarts = 10

	MinRating = 1.0
	MaxRating = 5.0
	// MidRating is substituted for missing or unparseable form values.
	MidRating = 3.0
)

// RecognizedDomainIDs lists the domain-id prefixes a competency column may
// carry. Validated once at dataset load, not re-matched per call site.
var RecognizedDomainIDs = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13",
}

var domainNames = map[string]string{
	"1":  "Teaching Strategies and Pedagogies",
	"2":  "Classroom Management Techniques",
	"3":  "Teaching Literacy and Numeracy in Early Grades",
	"4":  "Differentiated Instruction and Inclusive Education",
	"5":  "Integrating ICT in the Classroom",
	"6":  "Assessment and Evaluation of Learning",
	"7":  "Child Protection and Safe Learning Environment",
	"8":  "Parent and Community Engagement in Learning",
	"9":  "21st Century Skills",
	"10": "Values Education and Character Development",
	"11": "Remediation Teaching Strategies",
	"12": "Mental Health and Well-Being for Educators",
	"13": "Curriculum Development and Planning",
}

// DomainName resolves a domain id to its display name. Unknown ids fall back
// to a generated label so partial datasets still render.
func DomainName(domainID string) string {
	if name, ok := domainNames[domainID]; ok {
		return name
	}
	return "Domain " + domainID
}

var clusterInterpretations = map[int]string{
	0: "High Engagement Teachers - Active Strategy Users: This cluster has high mean values across most features, particularly those related to instructional approaches (e.g., Inquiry-Based Learning, Project-Based Learning, Cooperative Learning, Contextualized and Local Teaching) and classroom management (e.g., Managing Disruptive Behavior, Establishing routines, Use of positive reinforcement, Time on task management, Promoting learning self-discipline). This cluster seems to represent individuals who strongly endorse or actively utilize a wide range of teaching and classroom management strategies.",
	1: "Moderate Engagement Teachers - Neutral Stance: This cluster has mean values around 3 for most features, indicating a more moderate or neutral stance on the various teaching and classroom management strategies. This group might represent individuals who are somewhat familiar with or occasionally use these approaches but do not strongly identify with them.",
	2: "Low Engagement Teachers - Traditional Methods: This cluster has low mean values across most features. This suggests that individuals in this cluster tend to rate these teaching and classroom management strategies as less important or less frequently used. This group might represent individuals who rely on more traditional methods or have less experience with the approaches listed.",
}

// ClusterInterpretation returns the human-authored profile text for a cluster
// id. The binding is only meaningful for the fit that produced the shipped
// dataset labels; cluster listings also expose a derived engagement rank.
func ClusterInterpretation(clusterID int) string {
	if text, ok := clusterInterpretations[clusterID]; ok {
		return text
	}
	return "Cluster interpretation not available."
}

var trainingPrograms = map[string][]string{
	"1": {
		"Inquiry-Based Learning Workshop",
		"Project-Based Learning Implementation",
		"Contextualized Teaching Strategies",
	},
	"2": {
		"Classroom Management Techniques",
		"Positive Behavior Support Systems",
		"Time Management Strategies",
	},
	"5": {
		"Digital Literacy Training",
		"LMS Implementation Workshop",
		"Blended Learning Strategies",
	},
}

// TrainingPrograms returns the suggested program catalog for a domain.
// Domains without a bespoke list get a generic set built from the name.
func TrainingPrograms(domainID string) []string {
	if programs, ok := trainingPrograms[domainID]; ok {
		return programs
	}
	return []string{
		"Training program for " + DomainName(domainID),
		"Skill development workshops",
		"Hands-on practice sessions",
	}
}
