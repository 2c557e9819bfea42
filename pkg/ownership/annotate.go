/*
Copyright 2022 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ownership

import (
	"io"

	yaml3 "gopkg.in/yaml.v3"

	"github.com/kubernetes-sigs/subprojects/pkg/utils"
)

// EncodeAnnotated writes the sigs.yaml document with a justification
// comment at the end of every owners entry that has one. The comments ride
// along as presentation only; parsing the output again drops them.
func EncodeAnnotated(w io.Writer, context *utils.Context, reasons map[string]string, indent int) error {
	node := &yaml3.Node{}
	if err := node.Encode(context); err != nil {
		return err
	}
	annotateOwners(node, reasons)
	encoder := yaml3.NewEncoder(w)
	encoder.SetIndent(indent)
	if err := encoder.Encode(node); err != nil {
		return err
	}
	return encoder.Close()
}

func annotateOwners(node *yaml3.Node, reasons map[string]string) {
	switch node.Kind {
	case yaml3.DocumentNode, yaml3.SequenceNode:
		for _, child := range node.Content {
			annotateOwners(child, reasons)
		}
	case yaml3.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value == "owners" && value.Kind == yaml3.SequenceNode {
				for _, item := range value.Content {
					if reason, ok := reasons[item.Value]; ok {
						item.LineComment = "# " + reason
					}
				}
			}
			annotateOwners(value, reasons)
		}
	}
}
