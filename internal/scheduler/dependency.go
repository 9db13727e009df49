package scheduler

import "github.com/alexanderramin/reflow/internal/domain"

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// OrderByDependencies returns the work orders arranged so that every
// dependency precedes its dependents.
//
// The traversal is a depth-first search started from each order in input
// order, so orders without dependencies and independent subgraphs keep their
// relative input order. Dependency IDs that match no order in the input are
// skipped. Re-entering an order that is still being visited returns a
// *CycleError naming that order.
func OrderByDependencies(orders []*domain.WorkOrder) ([]*domain.WorkOrder, error) {
	byID := make(map[string]*domain.WorkOrder, len(orders))
	for _, wo := range orders {
		if _, dup := byID[wo.ID]; !dup {
			byID[wo.ID] = wo
		}
	}

	state := make(map[string]visitState, len(byID))
	sorted := make([]*domain.WorkOrder, 0, len(byID))

	// frame is one node on the explicit DFS stack; next indexes the
	// dependency to look at when the frame resumes.
	type frame struct {
		wo   *domain.WorkOrder
		next int
	}

	for _, root := range orders {
		if state[root.ID] != unvisited {
			continue
		}
		state[root.ID] = inProgress
		stack := []frame{{wo: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.wo.DependsOn) {
				depID := top.wo.DependsOn[top.next]
				top.next++

				dep, ok := byID[depID]
				if !ok {
					continue
				}
				switch state[depID] {
				case inProgress:
					return nil, &CycleError{WorkOrderID: depID}
				case unvisited:
					state[depID] = inProgress
					stack = append(stack, frame{wo: dep})
				}
				continue
			}

			state[top.wo.ID] = done
			sorted = append(sorted, top.wo)
			stack = stack[:len(stack)-1]
		}
	}

	return sorted, nil
}
