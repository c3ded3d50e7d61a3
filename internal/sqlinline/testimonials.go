package sqlinline

const QInsertTestimonial = `--sql 92ee64ba-9a1c-409b-b583-42893a61d7a8
insert into testimonials (id, user_id, text, date)
values ($1::uuid, $2::uuid, $3::text, $4::date);
`

const QListTestimonialsWithAuthors = `--sql e090fb51-b510-4e41-a457-dfdb94e8a254
select t.id, t.user_id, t.text, t.date, u.first_name, u.last_name
from testimonials t
join users u on u.id = t.user_id
order by t.date desc, t.id
limit $1::int;
`

const QDeleteTestimonial = `--sql 78df456f-7db2-42f4-895c-3331c13055dd
delete from testimonials
where id = $1::uuid;
`
