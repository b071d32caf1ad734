package models

// Category sentinel meaning "no category filter".
const CategoryAll = "All"

// AnonymousUser is the display name used when the profile has no name set.
const AnonymousUser = "Anonymous"

// Request types

type AddCommentRequest struct {
	Text string `json:"text"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Quantity string `json:"quantity"`
}

type SubmitEventRequest struct {
	Name        string `json:"name"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Response types

type ReactionResponse struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

type EngagementResponse struct {
	Likes    int       `json:"likes"`
	Dislikes int       `json:"dislikes"`
	Comments []Comment `json:"comments"`
}

type RegisterResponse struct {
	Registration Registration `json:"registration"`
	Message      string       `json:"message"`
}

type ReminderResponse struct {
	Scheduled   int    `json:"scheduled"`
	EventStarts string `json:"event_starts"`
	Message     string `json:"message"`
}

// Domain types

// Event is a record from the remote catalog. Likes and Registered are
// local annotations joined in by the catalog builder; they are never sent
// back to the remote service.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Likes       int    `json:"likes"`
	Registered  int    `json:"registered"`
}

// Comment JSON tags match the shape older app versions stored, so
// existing comment lists decode as-is.
type Comment struct {
	ID   string `json:"id"`
	User string `json:"user"`
	Text string `json:"text"`
}

type FeedbackEntry struct {
	User     string `json:"user"`
	Feedback string `json:"feedback"`
}

// Registration keeps the denormalized eventName older clients wrote and
// adds EventID so registrations for same-named events stay distinct.
// Legacy records have an empty EventID.
type Registration struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id,omitempty"`
	EventName string `json:"eventName"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Quantity  string `json:"quantity"`
}

type Profile struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Email  string `json:"email"`
	Pic    string `json:"pic,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
