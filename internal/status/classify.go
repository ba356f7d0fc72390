package status

import "github.com/chmouel/wtstatus/internal/models"

// ClassifyConflict maps an unmerged (us, them) code pair to its action. The
// mapping is a closed enumeration; a pair outside it is an
// *UnknownConflictCodeError so a new backend code can never be misread as
// some default action.
func ClassifyConflict(us, them models.ChangeCode) (models.UnmergedAction, error) {
	type pair struct{ us, them models.ChangeCode }
	switch (pair{us, them}) {
	case pair{models.ChangeCodeAdded, models.ChangeCodeAdded}:
		return models.BothAdded, nil
	case pair{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeUpdatedButUnmerged}:
		return models.BothModified, nil
	case pair{models.ChangeCodeDeleted, models.ChangeCodeDeleted}:
		return models.BothDeleted, nil
	case pair{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeDeleted},
		pair{models.ChangeCodeAdded, models.ChangeCodeDeleted}:
		return models.DeletedByThem, nil
	case pair{models.ChangeCodeDeleted, models.ChangeCodeUpdatedButUnmerged},
		pair{models.ChangeCodeDeleted, models.ChangeCodeAdded}:
		return models.DeletedByUs, nil
	case pair{models.ChangeCodeAdded, models.ChangeCodeUpdatedButUnmerged}:
		return models.AddedByUs, nil
	case pair{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeAdded}:
		return models.AddedByThem, nil
	}
	return 0, &UnknownConflictCodeError{Us: us, Them: them}
}

// TextualAction reports whether the action leaves mergeable text content in
// the working tree. Only then does git splice conflict markers; every
// delete-flavoured action has nothing to scan.
func TextualAction(action models.UnmergedAction) bool {
	return action == models.BothAdded || action == models.BothModified
}
