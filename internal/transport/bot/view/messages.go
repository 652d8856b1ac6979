package view

const StartMessage = `👋 <b>Price tracker</b>

Paste a Mercari item link to track its price, or use the commands below.

/list - tracked items and keywords
/track &lt;url&gt; - track one item
/keyword &lt;text&gt; - save a keyword and store its current results
/search &lt;text&gt; - preview results without saving
/items &lt;keyword&gt; - items stored under a keyword
/retry - repeat the last failed action`

const (
	Busy           = "⏳ Still working on the previous request."
	Expired        = "⌛ This button has expired, send /list again."
	NotAnItemURL   = "🤔 That does not look like a Mercari item link. Send /help for the commands."
	TrackUsage     = "Usage: /track <url>"
	KeywordUsage   = "Usage: /keyword <text>"
	SearchUsage    = "Usage: /search <text>"
	ItemsUsage     = "Usage: /items <keyword>"
	NothingToRetry = "Nothing to retry."
	Cancelled      = "Deletion cancelled."
	fallbackError  = "Something went wrong"
)
