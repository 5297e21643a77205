package wire

// Address is the {address, name?} identity object used for recipients.
type Address struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// BareAddress is the {address} object used for cc and bcc entries.
type BareAddress struct {
	Address string `json:"address"`
}

// Sender is the {address, name?, reply_to?} object identifying the sender.
type Sender struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Attachment is the {id, data} shape used for both the inline attachment and
// file attachments.
type Attachment struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// Addresses wraps each plain address string into a BareAddress.
// A nil input stays nil so the OmitNil policy can drop the field; an empty
// input becomes an empty, non-nil list.
func Addresses(list []string) []BareAddress {
	if list == nil {
		return nil
	}
	out := make([]BareAddress, 0, len(list))
	for _, a := range list {
		out = append(out, BareAddress{Address: a})
	}
	return out
}
