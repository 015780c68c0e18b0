// Package supplyfinder is the wire contract between the finder client and
// the supplier and vendor services: request and reply messages plus the
// Greeter and Lookup service descriptors. Messages travel as JSON through
// the codec registered in codec.go.
package supplyfinder

type GreetRequest struct {
	Name string `json:"name,omitempty"`
}

func (x *GreetRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

type GreetReply struct {
	Message string `json:"message,omitempty"`
}

func (x *GreetReply) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

type InquireRecordRequest struct {
	Id uint32 `json:"id,omitempty"`
}

func (x *InquireRecordRequest) GetId() uint32 {
	if x != nil {
		return x.Id
	}
	return 0
}

type Record struct {
	Url      string `json:"url,omitempty"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

func (x *Record) GetUrl() string {
	if x != nil {
		return x.Url
	}
	return ""
}

func (x *Record) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *Record) GetLocation() string {
	if x != nil {
		return x.Location
	}
	return ""
}

type InquireRecordReply struct {
	Found  bool    `json:"found,omitempty"`
	Record *Record `json:"record,omitempty"`
}

func (x *InquireRecordReply) GetFound() bool {
	if x != nil {
		return x.Found
	}
	return false
}

func (x *InquireRecordReply) GetRecord() *Record {
	if x != nil {
		return x.Record
	}
	return nil
}
