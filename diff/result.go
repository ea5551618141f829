/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package diff

import (
	"unsafe"

	"github.com/json-iterator/go"
)

// FaultStatus is the status reported by the sentinel that takes the place of changes when a
// comparison failed.
const FaultStatus = "Failed"

// Fault describes a comparison that could not complete.
type Fault struct {
	// Reason is the message reported to clients.
	Reason string

	// Err is the underlying error.
	Err error
}

// Result is the outcome of a comparison: either an ordered list of changes or a Fault, never both.
type Result struct {
	changes []Change
	fault   *Fault
}

// Succeeded returns a Result with the given changes.
func Succeeded(changes []Change) Result {
	return Result{changes: changes}
}

// Failed returns a Result for a comparison that could not complete because of err.
func Failed(err error) Result {
	return Result{
		fault: &Fault{
			Reason: "Unable to check differences in schema. Error comparing schemas: " + err.Error(),
			Err:    err,
		},
	}
}

// Changes returns the changes in the result. It returns nil for a fault.
func (result Result) Changes() []Change {
	return result.changes
}

// Fault returns the fault in the result or nil if the comparison succeeded.
func (result Result) Fault() *Fault {
	return result.fault
}

// IsFault returns true if the comparison failed.
func (result Result) IsFault() bool {
	return result.fault != nil
}

// IsEmpty returns true if the comparison succeeded and found no change.
func (result Result) IsEmpty() bool {
	return result.fault == nil && len(result.changes) == 0
}

// MarshalJSON implements json.Marshaler. A successful result is encoded as an array of changes and
// a fault as an array with a single {"status": "Failed", "reason": ...} object.
func (result Result) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(result)
}

// resultMarshaller implements jsoniter.ValEncoder to encode Result to JSON.
type resultMarshaller struct{}

var _ jsoniter.ValEncoder = resultMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (resultMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

// Encode implements jsoniter.ValEncoder.
func (resultMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	result := (*Result)(ptr)
	stream.WriteArrayStart()

	if result.fault != nil {
		stream.WriteObjectStart()
		stream.WriteObjectField("status")
		stream.WriteString(FaultStatus)
		stream.WriteMore()
		stream.WriteObjectField("reason")
		stream.WriteString(result.fault.Reason)
		stream.WriteObjectEnd()
	} else {
		for i := range result.changes {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteVal(&result.changes[i])
		}
	}

	stream.WriteArrayEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("diff.Result", resultMarshaller{})
}
