// Package messages keeps every user-facing string in one place.
package messages

const (
	Welcome = "👋 *TaskBot* is online!\n\n" +
		"/add — create a task\n" +
		"/list — view current tasks\n" +
		"/done N — mark task N done\n" +
		"/cancel — abort the current dialog\n\n" +
		"Reminders repeat until you mark the task done."

	AskDescription = "What should I remind you about?"
	AskDue         = "When is it due? (YYYY-MM-DD HH:MM)"
	AskTopic       = "Topic? Send one or /skip."
	BadDue         = "Could not parse that date/time, try YYYY-MM-DD HH:MM."
	PickInterval   = "Choose a check-in interval:"

	NoTasks        = "You have no active tasks."
	NoSuchTask     = "No such task."
	TaskDone       = "🗹 Task #%d marked done."
	TaskDeleted    = "Task #%d deleted."
	TasksCleared   = "All tasks for that user are gone."
	WizardCanceled = "Canceled, nothing saved."
	NothingToDo    = "Nothing in progress."
	Snoozed        = "Snoozed for 10 minutes."
	AskNewDue      = "Send the new due time (YYYY-MM-DD HH:MM)."
	DueUpdated     = "Due time updated."

	QuestionsOff    = "Check-ins for task #%d disabled."
	QuestionsEvery  = "Check-ins for task #%d every %s."
	IntervalInvalid = "That interval makes no sense to me."

	AdminWelcome   = "Admin session opened, %s."
	AdminBye       = "Admin session closed."
	AdminDenied    = "Admins only."
	AdminBadSecret = "Wrong secret."
	AdminUsage     = "Usage: /admin login <secret> | logout | list | del N | block <uid> | unblock <uid> | clear <uid>"
	UserBlocked    = "User %d blocked."
	UserUnblocked  = "User %d unblocked."

	UsageDone = "Usage: /done TASK_NUMBER"
)
