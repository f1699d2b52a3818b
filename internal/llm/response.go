package llm

// Model backends answer in more than one shape: a single object carrying
// the content directly, or an ordered message exchange where the answer
// is the content of the last message (with either typed or map-based
// messages). Normalization over that closed set lives here so every
// generation step extracts text identically.

// DirectContent is a response carrying its text directly.
type DirectContent struct {
	Content string
}

// Message is one entry in an ordered model exchange.
type Message struct {
	Role    string
	Content string
}

// MessageList is a response carrying an ordered message exchange; the
// answer is the content of the last message.
type MessageList struct {
	Messages []Message
}

// Content normalizes a model response to its textual content.
// Recognized shapes are DirectContent, MessageList, and a map with a
// "messages" slice of typed or map-based entries. Anything else is
// returned unchanged; the function never fails.
func Content(result any) any {
	switch v := result.(type) {
	case DirectContent:
		return v.Content
	case *DirectContent:
		if v == nil {
			return result
		}
		return v.Content
	case MessageList:
		return lastMessageContent(v.Messages, result)
	case *MessageList:
		if v == nil {
			return result
		}
		return lastMessageContent(v.Messages, result)
	case map[string]any:
		msgs, ok := v["messages"].([]any)
		if !ok || len(msgs) == 0 {
			return result
		}
		switch m := msgs[len(msgs)-1].(type) {
		case Message:
			return m.Content
		case map[string]any:
			if c, ok := m["content"]; ok {
				return c
			}
			return m
		default:
			return m
		}
	default:
		return result
	}
}

// Text returns the normalized content when it is textual, and the empty
// string otherwise. Callers treat an empty result as a malformed
// response.
func Text(result any) string {
	if s, ok := Content(result).(string); ok {
		return s
	}
	return ""
}

func lastMessageContent(msgs []Message, raw any) any {
	if len(msgs) == 0 {
		return raw
	}
	return msgs[len(msgs)-1].Content
}
