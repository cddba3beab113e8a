package admin

import (
	"net/http"

	"digistore_server/handling"
	"digistore_server/lib"
	"digistore_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := ar.testimonialService.List(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch testimonials", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(testimonials), gecho.Send())
}

func (ar *AdminRoutesManager) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid testimonial id", ar.logger, w)
		return
	}

	testimonial, err := ar.testimonialService.Get(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Failed to fetch testimonial", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(testimonial), gecho.Send())
}

// UpdateTestimonial approves or edits a testimonial. Omitted fields are kept.
func (ar *AdminRoutesManager) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid testimonial id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.TestimonialUpdateRequest](r)
	if err != nil {
		handling.HandleError(err, "Failed to update testimonial", ar.logger, w)
		return
	}

	testimonial, err := ar.testimonialService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to update testimonial", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Testimonial updated"),
		gecho.WithData(testimonial),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(r, "id")
	if err != nil {
		handling.HandleError(err, "Invalid testimonial id", ar.logger, w)
		return
	}

	if err := ar.testimonialService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "Failed to delete testimonial", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Testimonial deleted"), gecho.Send())
}
