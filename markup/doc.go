// Package markup renders and parses the XML fragments that step
// configurations are persisted as.
//
// A fragment is a flat sequence of tag/value elements:
//
//	<Activity>Check-in</Activity>
//	<OutputPath>/tmp/out.xes</OutputPath>
//
// AddTagValue renders one element and refuses values that XML 1.0 cannot
// carry. Parse turns a fragment (or a whole document via ParseDocument) into
// a Node tree, backed by etree, whose children are looked up by name.
package markup
